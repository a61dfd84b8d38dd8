package models

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypePhone    FieldType = "phone"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeFile     FieldType = "file"
	FieldTypeDropdown FieldType = "dropdown"
)

type FormField struct {
	Label    string    `json:"label"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

type SubService struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name"`
	IsActive   bool        `json:"isActive"`
	FormFields []FormField `json:"formFields,omitempty"`
}

type Service struct {
	ID                      string       `json:"id"`
	Name                    string       `json:"name"`
	Description             string       `json:"description,omitempty"`
	ImageURL                string       `json:"imageUrl,omitempty"`
	EstimatedProcessingDays int          `json:"estimatedProcessingDays,omitempty"`
	IsActive                bool         `json:"isActive"`
	RequiredDocuments       []string     `json:"requiredDocuments,omitempty"`
	SubServices             []SubService `json:"subServices,omitempty"`
	Airlines                []string     `json:"airlines,omitempty"`
	SubServicesUIType       string       `json:"subServicesUiType,omitempty"`
}

// SubService returns the named sub-service, matched exactly.
func (s Service) SubService(name string) (SubService, bool) {
	for _, sub := range s.SubServices {
		if sub.Name == name {
			return sub, true
		}
	}
	return SubService{}, false
}
