package dto

// UpsertStudentRequest registers or updates a student keyed by CPF. CPF and
// phone accept masked input; they are normalized to digits before storage.
type UpsertStudentRequest struct {
	FullName   string `json:"full_name" validate:"required,min=3"`
	CPF        string `json:"cpf" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state" validate:"omitempty,len=2"`
	ZipCode    string `json:"zip_code"`
}
