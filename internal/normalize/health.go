package normalize

import "github.com/hoanghai1803/newshub/internal/models"

// Health maps a /health payload for service.
func Health(raw []byte, service string) (models.Health, error) {
	o, err := decode(raw, "health")
	if err != nil {
		return models.Health{Service: service, Status: "down", Error: err.Error()}, err
	}
	return models.Health{
		Service: service,
		Status:  o.strOr("status", "unknown"),
		Message: o.strOr("message", ""),
	}, nil
}
