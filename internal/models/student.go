package models

import "time"

// Student represents a post-graduation student. CPF and phone are stored
// digits-only; display masks are applied at presentation time.
type Student struct {
	ID         string     `db:"id" json:"id"`
	FullName   string     `db:"full_name" json:"full_name"`
	CPF        string     `db:"cpf" json:"cpf"`
	Email      string     `db:"email" json:"email"`
	Phone      string     `db:"phone" json:"phone"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Street     string     `db:"street" json:"street"`
	Number     string     `db:"number" json:"number"`
	Complement string     `db:"complement" json:"complement"`
	District   string     `db:"district" json:"district"`
	City       string     `db:"city" json:"city"`
	State      string     `db:"state" json:"state"`
	ZipCode    string     `db:"zip_code" json:"zip_code"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
