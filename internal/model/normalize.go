package model

// EntityCategories is the fixed category order used everywhere entities are
// walked. Keeping this stable is what makes repeated builds deterministic.
var EntityCategories = []string{"diseases", "symptoms", "procedures", "medications"}

// Entity is a single extracted entity tagged with its category.
type Entity struct {
	Category string
	Label    string
}

// Labels returns the labels for a single category, nil for unknown categories.
func (e EntitySet) Labels(category string) []string {
	switch category {
	case "diseases":
		return e.Diseases
	case "symptoms":
		return e.Symptoms
	case "procedures":
		return e.Procedures
	case "medications":
		return e.Medications
	}
	return nil
}

// NormalizeEntities flattens an entity set into a uniform typed list, in fixed
// category order and original label order.
func NormalizeEntities(set EntitySet) []Entity {
	var entities []Entity
	for _, category := range EntityCategories {
		for _, label := range set.Labels(category) {
			entities = append(entities, Entity{Category: category, Label: label})
		}
	}
	return entities
}

// TopPredictions returns up to n predictions by original rank. The input slice
// is never modified.
func (r PredictionResult) TopPredictions(n int) []ICDPrediction {
	if n > len(r.ICDPredictions) {
		n = len(r.ICDPredictions)
	}
	if n <= 0 {
		return nil
	}
	return r.ICDPredictions[:n]
}
