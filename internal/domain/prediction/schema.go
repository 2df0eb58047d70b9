// Package prediction holds the inference domain: model slots, their feature
// schemas, the normalization of client payloads into feature vectors, the
// artifact format produced by offline training and the registry of loaded models.
package prediction

// Slot names one of the fixed model positions served by the API.
type Slot string

const (
	SlotSales       Slot = "sales"
	SlotMaintenance Slot = "maintenance"
)

// Slots lists every slot in a stable order.
var Slots = []Slot{SlotSales, SlotMaintenance}

// Schema is the ordered list of feature names a slot's model consumes.
type Schema []string

var (
	SalesSchema = Schema{
		"Temperature", "Customers", "Marketing_Spend", "Month", "DayOfWeek",
		"Region_East", "Region_North", "Region_South", "Promotion_Yes", "Holiday_Yes",
	}
	MaintenanceSchema = Schema{
		"Sensor1", "Sensor2", "Sensor3", "Temperature", "Pressure", "Vibration",
	}
)

// SchemaFor returns the feature schema for slot, or nil for an unknown slot.
func SchemaFor(slot Slot) Schema {
	switch slot {
	case SlotSales:
		return SalesSchema
	case SlotMaintenance:
		return MaintenanceSchema
	}
	return nil
}

// Has reports whether name is one of the schema's fields.
func (s Schema) Has(name string) bool {
	for _, f := range s {
		if f == name {
			return true
		}
	}
	return false
}

// Equal reports whether other lists the same names in the same order.
func (s Schema) Equal(other []string) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Record maps a vector laid out in schema order back to named fields.
// Extra trailing values are ignored.
func (s Schema) Record(vec []float64) map[string]float64 {
	out := make(map[string]float64, len(s))
	for i, name := range s {
		if i >= len(vec) {
			break
		}
		out[name] = vec[i]
	}
	return out
}
