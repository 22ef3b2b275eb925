package category

import (
	"log/slog"

	categoryDatamodel "github.com/frahmantamala/moneymappr/internal/core/datamodel/category"
)

// Service exposes the closed category enumeration to API clients.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// GetAllCategories lists the categories in enumeration order.
func (s *Service) GetAllCategories() []CategoryResponse {
	all := categoryDatamodel.All()
	responses := make([]CategoryResponse, 0, len(all))
	for _, c := range all {
		responses = append(responses, FromDataModel(c).ToResponse())
	}

	s.logger.Debug("retrieved categories", "count", len(responses))
	return responses
}

func (s *Service) GetCategoryByName(name string) (*CategoryResponse, bool) {
	c, err := categoryDatamodel.Parse(name)
	if err != nil {
		return nil, false
	}
	response := FromDataModel(c).ToResponse()
	return &response, true
}

func (s *Service) IsValidCategory(name string) bool {
	_, ok := s.GetCategoryByName(name)
	return ok
}
