// ABOUTME: Disease treatment guidance and image classifier predictions
package models

// Treatment is the guidance stored for one disease label
type Treatment struct {
	General    string `json:"general"`
	Prevention string `json:"prevention"`
	Organic    string `json:"organic"`
}

// IsEmpty reports whether no guidance is present
func (t Treatment) IsEmpty() bool {
	return t.General == "" && t.Prevention == "" && t.Organic == ""
}

// ClassConfidence is one ranked class of an image prediction
type ClassConfidence struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// DiseasePrediction is the output of an image classifier
type DiseasePrediction struct {
	PredictedClass string            `json:"predicted_class"`
	Confidence     float64           `json:"confidence"`
	Top3           []ClassConfidence `json:"top_3"`
}
