package models

// Row is a single semi-structured record from an RDW dataset. The
// upstream Socrata schema drifts over time, so attributes are kept
// opaque instead of being mapped onto a fixed struct.
type Row map[string]interface{}

// RelatedDatasets holds the five secondary dataset collections that
// enrich a vehicle record.
type RelatedDatasets struct {
	Axles         []Row
	Fuel          []Row
	Body          []Row
	BodySpecifics []Row
	VehicleClass  []Row
}

// MergeVehicle attaches the related datasets to a vehicle record under
// both the friendly names and the original RDW property names. Both
// key families carry the same collections; existing consumers depend
// on the legacy RDW names, newer ones on the friendly names.
func MergeVehicle(vehicle Row, related RelatedDatasets) Row {
	merged := make(Row, len(vehicle)+10)
	for key, value := range vehicle {
		merged[key] = value
	}

	axles := orEmpty(related.Axles)
	fuel := orEmpty(related.Fuel)
	body := orEmpty(related.Body)
	bodySpecifics := orEmpty(related.BodySpecifics)
	vehicleClass := orEmpty(related.VehicleClass)

	merged["axles"] = axles
	merged["fuel"] = fuel
	merged["body"] = body
	merged["bodySpecifics"] = bodySpecifics
	merged["vehicleClass"] = vehicleClass

	merged["api_gekentekende_voertuigen_assen"] = axles
	merged["api_gekentekende_voertuigen_brandstof"] = fuel
	merged["api_gekentekende_voertuigen_carrosserie"] = body
	merged["api_gekentekende_voertuigen_carrosserie_specifiek"] = bodySpecifics
	merged["api_gekentekende_voertuigen_voertuigklasse"] = vehicleClass

	return merged
}

// orEmpty guarantees a JSON array, never null, for dataset collections.
func orEmpty(rows []Row) []Row {
	if rows == nil {
		return []Row{}
	}
	return rows
}
