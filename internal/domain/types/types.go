// Package types contains common enumerations used across the engine.
package types

// Weapon identifies one of the three fencing weapons.
type Weapon string

// Weapon values.
const (
	WeaponFoil  Weapon = "foil"
	WeaponEpee  Weapon = "epee"
	WeaponSabre Weapon = "sabre"
)

// Valid reports whether the weapon is one of the known values.
// The empty string is accepted as "unspecified".
func (w Weapon) Valid() bool {
	switch w {
	case "", WeaponFoil, WeaponEpee, WeaponSabre:
		return true
	}
	return false
}

// Category identifies an age/experience category.
type Category string

// Category values.
const (
	CategoryU14     Category = "u14"
	CategoryCadet   Category = "cadet"
	CategoryJunior  Category = "junior"
	CategorySenior  Category = "senior"
	CategoryVeteran Category = "veteran"
)

// Valid reports whether the category is one of the known values.
// The empty string is accepted as "unspecified".
func (c Category) Valid() bool {
	switch c {
	case "", CategoryU14, CategoryCadet, CategoryJunior, CategorySenior, CategoryVeteran:
		return true
	}
	return false
}

// PhaseType identifies what kind of competitive phase a PhaseConfig describes.
type PhaseType string

// PhaseType values.
const (
	PhasePoule             PhaseType = "POULE"
	PhaseDirectElimination PhaseType = "DIRECT_ELIMINATION"
	PhaseClassification    PhaseType = "CLASSIFICATION"
	PhaseRepechage         PhaseType = "REPECHAGE"
)

// Valid reports whether the phase type is one of the known values.
func (p PhaseType) Valid() bool {
	switch p {
	case PhasePoule, PhaseDirectElimination, PhaseClassification, PhaseRepechage:
		return true
	}
	return false
}

// QualificationMethod selects how the qualified set is cut from ranked results.
type QualificationMethod string

// QualificationMethod values.
const (
	QualifyByQuota      QualificationMethod = "quota"
	QualifyByPercentage QualificationMethod = "percentage"
)

// Valid reports whether the method is one of the known values.
func (m QualificationMethod) Valid() bool {
	switch m {
	case QualifyByQuota, QualifyByPercentage:
		return true
	}
	return false
}

// SeedingMethod selects how athletes are ordered into a bracket.
type SeedingMethod string

// SeedingMethod values.
const (
	SeedByRanking SeedingMethod = "ranking"
	SeedByResults SeedingMethod = "results"
	SeedRandom    SeedingMethod = "random"
)

// BracketType distinguishes the main table from secondary tables.
type BracketType string

// BracketType values.
const (
	BracketMain           BracketType = "main"
	BracketConsolation    BracketType = "consolation"
	BracketClassification BracketType = "classification"
)
