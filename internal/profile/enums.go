package profile

import (
	"fmt"
	"strings"
)

// Gender is the respondent's declared gender.
type Gender string

const (
	GenderMale   Gender = "homme"
	GenderFemale Gender = "femme"
)

// Genders lists every accepted Gender in questionnaire order.
func Genders() []Gender { return []Gender{GenderMale, GenderFemale} }

func (g Gender) Valid() bool { return contains(Genders(), g) }

// Relationship is the respondent's relationship status.
type Relationship string

const (
	RelationshipSingle Relationship = "celibataire"
	RelationshipCouple Relationship = "couple"
)

func Relationships() []Relationship { return []Relationship{RelationshipSingle, RelationshipCouple} }

func (r Relationship) Valid() bool { return contains(Relationships(), r) }

// HeatingType is the main heating source of the home.
type HeatingType string

const (
	HeatingNone        HeatingType = "aucun"
	HeatingHeatPump    HeatingType = "pompe-chaleur"
	HeatingWood        HeatingType = "bois"
	HeatingElectricity HeatingType = "electricite"
	HeatingGas         HeatingType = "gaz"
	HeatingOil         HeatingType = "fioul"
)

// HeatingTypes lists heating sources from greenest to most emitting.
func HeatingTypes() []HeatingType {
	return []HeatingType{
		HeatingNone, HeatingHeatPump, HeatingWood,
		HeatingElectricity, HeatingGas, HeatingOil,
	}
}

func (h HeatingType) Valid() bool { return contains(HeatingTypes(), h) }

// Insulation reports whether the home is insulated.
type Insulation string

const (
	InsulationYes     Insulation = "oui"
	InsulationUnknown Insulation = "ne-sais-pas"
	InsulationNo      Insulation = "non"
)

func Insulations() []Insulation {
	return []Insulation{InsulationYes, InsulationUnknown, InsulationNo}
}

func (i Insulation) Valid() bool { return contains(Insulations(), i) }

// CarType is the motorisation of the respondent's car.
type CarType string

const (
	CarElectric CarType = "electrique"
	CarPetrol   CarType = "essence"
	CarDiesel   CarType = "diesel"
)

func CarTypes() []CarType { return []CarType{CarElectric, CarPetrol, CarDiesel} }

func (c CarType) Valid() bool { return contains(CarTypes(), c) }

// TripFrequency counts long-distance trips (flights, cruises) per year.
type TripFrequency string

const (
	TripsNever     TripFrequency = "jamais"
	TripsOneTwo    TripFrequency = "1-2"
	TripsThreeFive TripFrequency = "3-5"
	TripsMoreThan5 TripFrequency = "plus-5"
)

func TripFrequencies() []TripFrequency {
	return []TripFrequency{TripsNever, TripsOneTwo, TripsThreeFive, TripsMoreThan5}
}

func (t TripFrequency) Valid() bool { return contains(TripFrequencies(), t) }

// Usage is a four-step habit frequency.
type Usage string

const (
	UsageNever     Usage = "jamais"
	UsageSometimes Usage = "parfois"
	UsageOften     Usage = "souvent"
	UsageAlways    Usage = "toujours"
)

func Usages() []Usage { return []Usage{UsageNever, UsageSometimes, UsageOften, UsageAlways} }

func (u Usage) Valid() bool { return contains(Usages(), u) }

// Occurrence is a three-step frequency without an "always" option.
type Occurrence string

const (
	OccurrenceNever     Occurrence = "jamais"
	OccurrenceSometimes Occurrence = "parfois"
	OccurrenceOften     Occurrence = "souvent"
)

func Occurrences() []Occurrence {
	return []Occurrence{OccurrenceNever, OccurrenceSometimes, OccurrenceOften}
}

func (o Occurrence) Valid() bool { return contains(Occurrences(), o) }

// ClothingFrequency is how often new clothes are bought.
type ClothingFrequency string

const (
	ClothingNever      ClothingFrequency = "jamais"
	ClothingYearly     ClothingFrequency = "1-2-an"
	ClothingQuarterly  ClothingFrequency = "2-3-mois"
	ClothingEveryMonth ClothingFrequency = "chaque-mois"
)

func ClothingFrequencies() []ClothingFrequency {
	return []ClothingFrequency{ClothingNever, ClothingYearly, ClothingQuarterly, ClothingEveryMonth}
}

func (c ClothingFrequency) Valid() bool { return contains(ClothingFrequencies(), c) }

// SortPractice is whether household waste is sorted for recycling.
type SortPractice string

const (
	SortYes       SortPractice = "oui"
	SortPartially SortPractice = "partiellement"
	SortNo        SortPractice = "non"
)

func SortPractices() []SortPractice { return []SortPractice{SortYes, SortPartially, SortNo} }

func (s SortPractice) Valid() bool { return contains(SortPractices(), s) }

func contains[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// parseEnum matches raw against values, ignoring case and surrounding space.
func parseEnum[T ~string](raw string, values []T) (T, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, v := range values {
		if string(v) == needle {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownValue, raw, strings.Join(enumStrings(values), ", "))
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
