package model

// Member classes recognized by club restrictions.
const (
	MemberClassFull   = "FULL"
	MemberClassSenior = "SENIOR"
	MemberClassJunior = "JUNIOR"
	MemberClassSocial = "SOCIAL"
)

// Member is the local read model of the club member directory. The host
// system owns member lifecycle; this service only reads it for validation and
// display names.
type Member struct {
	MemberID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	MemberClass string `gorm:"type:varchar(20);not null;default:'FULL'"       json:"member_class"` // FULL | SENIOR | JUNIOR | SOCIAL
	IsActive    bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (Member) TableName() string { return "members" }
