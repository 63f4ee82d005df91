package model

import "time"

// Passenger is an independent person record referenced by reservations.
// DocumentNumber is unique per document type.  A passenger cannot be
// deleted while any of their reservations is CONFIRMED.
//
// Fields:
//  ID             – primary key identifier.
//  FirstName      – given name.
//  LastName       – family name.
//  DocumentType   – identity document type (e.g. PASSPORT, DNI).
//  DocumentNumber – identity document number, unique per type.
//  Email          – contact email (optional).
//  Phone          – contact phone (optional).
//  BirthDate      – date of birth (optional).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Passenger struct {
	ID             uint64     // passengers.id
	FirstName      string     // passengers.first_name
	LastName       string     // passengers.last_name
	DocumentType   string     // passengers.document_type
	DocumentNumber string     // passengers.document_number
	Email          *string    // passengers.email (nullable)
	Phone          *string    // passengers.phone (nullable)
	BirthDate      *time.Time // passengers.birth_date (nullable)
	CreatedAt      time.Time  // passengers.created_at
	UpdatedAt      time.Time  // passengers.updated_at
}

// FullName returns "First Last" for display and logging.
func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}
