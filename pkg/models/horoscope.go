package models

// Envelope is the uniform success body of the horoscope endpoints.
type Envelope struct {
	Success bool    `json:"success"`
	Data    *string `json:"data"`
	Status  int     `json:"status"`
}

// CompatibilityEnvelope carries the same shape as Envelope but names the
// payload after the resource.
type CompatibilityEnvelope struct {
	Success       bool    `json:"success"`
	Compatibility *string `json:"compatibility"`
	Status        int     `json:"status"`
}

func NewEnvelope(text string) Envelope {
	return Envelope{Success: true, Data: &text, Status: 200}
}

func NewCompatibilityEnvelope(text string) CompatibilityEnvelope {
	return CompatibilityEnvelope{Success: true, Compatibility: &text, Status: 200}
}
