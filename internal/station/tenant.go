package station

// manhattanMinLat is the latitude split between the two tenants.
// Everything at or north of ~40.769 is assigned to Manhattan.
const manhattanMinLat = 40.769

// AssignTenant maps a station latitude to its tenant partition.
// It is deterministic and total: out-of-range latitudes are the
// caller's responsibility to reject.
func AssignTenant(lat float64) TenantID {
	if lat >= manhattanMinLat {
		return TenantManhattan
	}
	return TenantBrooklyn
}
