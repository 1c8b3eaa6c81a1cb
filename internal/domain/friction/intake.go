package friction

// OrganizationSize is the self-reported size band of the organization
type OrganizationSize string

const (
	SizeSmall      OrganizationSize = "small"
	SizeMedium     OrganizationSize = "medium"
	SizeLarge      OrganizationSize = "large"
	SizeEnterprise OrganizationSize = "enterprise"
)

// Industry of the submitting organization
type Industry string

const (
	IndustryTechnology           Industry = "technology"
	IndustryFinance              Industry = "finance"
	IndustryHealthcare           Industry = "healthcare"
	IndustryManufacturing        Industry = "manufacturing"
	IndustryProfessionalServices Industry = "professional_services"
	IndustryRetail               Industry = "retail"
	IndustryPublicSector         Industry = "public_sector"
	IndustryOther                Industry = "other"
)

// RoleCustom selects an explicit multiplier instead of a preset
const RoleCustom = "custom"

// Multiplier bounds, inclusive
const (
	MinMultiplier = 1.0
	MaxMultiplier = 15.0
)

// OrganizationSizes lists the accepted size bands in display order
func OrganizationSizes() []OrganizationSize {
	return []OrganizationSize{SizeSmall, SizeMedium, SizeLarge, SizeEnterprise}
}

// Industries lists the accepted industries in display order
func Industries() []Industry {
	return []Industry{
		IndustryTechnology,
		IndustryFinance,
		IndustryHealthcare,
		IndustryManufacturing,
		IndustryProfessionalServices,
		IndustryRetail,
		IndustryPublicSector,
		IndustryOther,
	}
}

func (s OrganizationSize) Valid() bool {
	for _, v := range OrganizationSizes() {
		if s == v {
			return true
		}
	}
	return false
}

func (i Industry) Valid() bool {
	for _, v := range Industries() {
		if i == v {
			return true
		}
	}
	return false
}

// Intake is the raw calculator input. Multiplier is only read when RoleType
// is RoleCustom.
type Intake struct {
	OrganizationSize  OrganizationSize `json:"organization_size" gorm:"column:organization_size;size:32"`
	Industry          Industry         `json:"industry" gorm:"column:industry;size:64"`
	ProcessDelayHours float64          `json:"process_delay_hours" gorm:"column:process_delay_hours"`
	AffectedPeople    int              `json:"affected_people" gorm:"column:affected_people"`
	HourlyRate        float64          `json:"hourly_rate" gorm:"column:hourly_rate"`
	RoleType          string           `json:"role_type" gorm:"column:role_type;size:64"`
	Multiplier        *float64         `json:"multiplier,omitempty" gorm:"column:multiplier_override"`
}
