// Package profile models the lifestyle questionnaire answered by a user.
//
// A Profile is an immutable value: every field is optional (nil means
// "not answered yet") and every change produces a new Profile. The
// collaborator layer (CLI, HTTP sessions, TUI) owns mutation; the scoring
// engine only ever reads a Profile.
package profile

import (
	"errors"
	"fmt"
	"math"
)

// maxAge bounds the age answer; anything above is treated as a typo.
const maxAge = 130

// Profile holds the answers of one respondent.
type Profile struct {
	// Identity
	Gender       *Gender       `json:"gender,omitempty" yaml:"gender,omitempty"`
	Age          *int          `json:"age,omitempty" yaml:"age,omitempty"`
	Relationship *Relationship `json:"relationship,omitempty" yaml:"relationship,omitempty"`

	// Housing
	HouseholdSize  *int         `json:"householdSize,omitempty" yaml:"householdSize,omitempty"`
	HomeArea       *float64     `json:"homeArea,omitempty" yaml:"homeArea,omitempty"`
	HeatingType    *HeatingType `json:"heatingType,omitempty" yaml:"heatingType,omitempty"`
	HomeInsulation *Insulation  `json:"homeInsulation,omitempty" yaml:"homeInsulation,omitempty"`

	// Transport
	OwnsCar              *bool          `json:"ownsCar,omitempty" yaml:"ownsCar,omitempty"`
	CarType              *CarType       `json:"carType,omitempty" yaml:"carType,omitempty"`
	WeeklyKm             *float64       `json:"weeklyKm,omitempty" yaml:"weeklyKm,omitempty"`
	FlightFrequency      *TripFrequency `json:"flightFrequency,omitempty" yaml:"flightFrequency,omitempty"`
	PublicTransportUsage *Usage         `json:"publicTransportUsage,omitempty" yaml:"publicTransportUsage,omitempty"`
	CruiseFrequency      *TripFrequency `json:"cruiseFrequency,omitempty" yaml:"cruiseFrequency,omitempty"`

	// Food
	MeatMealsPerWeek    *int        `json:"meatMealsPerWeek,omitempty" yaml:"meatMealsPerWeek,omitempty"`
	DailyAnimalProducts *bool       `json:"dailyAnimalProducts,omitempty" yaml:"dailyAnimalProducts,omitempty"`
	BioLocalFrequency   *Usage      `json:"bioLocalFrequency,omitempty" yaml:"bioLocalFrequency,omitempty"`
	FoodWasteFrequency  *Occurrence `json:"foodWasteFrequency,omitempty" yaml:"foodWasteFrequency,omitempty"`

	// Consumption
	ClothingFrequency   *ClothingFrequency `json:"clothingFrequency,omitempty" yaml:"clothingFrequency,omitempty"`
	BuyNewElectronics   *bool              `json:"buyNewElectronics,omitempty" yaml:"buyNewElectronics,omitempty"`
	RepairFrequency     *Occurrence        `json:"repairFrequency,omitempty" yaml:"repairFrequency,omitempty"`
	SecondHandFrequency *Usage             `json:"secondHandFrequency,omitempty" yaml:"secondHandFrequency,omitempty"`

	// Waste
	SortWaste             *SortPractice `json:"sortWaste,omitempty" yaml:"sortWaste,omitempty"`
	TrashBagsPerWeek      *int          `json:"trashBagsPerWeek,omitempty" yaml:"trashBagsPerWeek,omitempty"`
	LowPackagingFrequency *Usage        `json:"lowPackagingFrequency,omitempty" yaml:"lowPackagingFrequency,omitempty"`
}

// New returns a profile with every field unanswered.
func New() Profile {
	return Profile{}
}

// Ptr returns a pointer to v. It keeps profile literals in tests and
// fixtures readable.
func Ptr[T any](v T) *T {
	return &v
}

// Apply returns a copy of p with the answers applied in order. An Answer
// with a nil Value clears its field. p itself is never modified.
func (p Profile) Apply(answers ...Answer) (Profile, error) {
	next := p
	for _, a := range answers {
		acc, ok := accessors[a.Field]
		if !ok {
			return p, fmt.Errorf("%w: %q", ErrUnknownField, a.Field)
		}
		if err := acc.set(&next, a.Value); err != nil {
			return p, fmt.Errorf("field %s: %w", a.Field, err)
		}
	}
	return next, nil
}

// Clear returns a copy of p with field reset to unanswered.
func (p Profile) Clear(field Field) (Profile, error) {
	return p.Apply(Answer{Field: field})
}

// Merge returns a copy of p where every answered field of overlay replaces
// the corresponding field of p. Unanswered overlay fields leave p unchanged.
func (p Profile) Merge(overlay Profile) Profile {
	next := p
	for _, f := range fieldOrder {
		acc := accessors[f]
		if v, ok := acc.value(&overlay); ok {
			// Types come from the same accessor, so set cannot fail.
			_ = acc.set(&next, v)
		}
	}
	return next
}

// Value returns the display form of field and whether it is answered.
func (p Profile) Value(field Field) (string, bool) {
	acc, ok := accessors[field]
	if !ok {
		return "", false
	}
	return acc.format(&p)
}

// Answered counts the answered fields.
func (p Profile) Answered() int {
	n := 0
	for _, f := range fieldOrder {
		if _, ok := accessors[f].value(&p); ok {
			n++
		}
	}
	return n
}

// Completion is the answered share of the questionnaire, in [0,1].
func (p Profile) Completion() float64 {
	return float64(p.Answered()) / float64(len(fieldOrder))
}

// Validate reports every out-of-range number and every enum value outside
// its closed set. Scoring never requires a valid profile; Validate guards
// the document and API boundaries.
func (p Profile) Validate() error {
	var errs []error

	checkEnum := func(f Field, valid bool, v string) {
		if !valid {
			errs = append(errs, fmt.Errorf("%s: %w: %q", f, ErrUnknownValue, v))
		}
	}
	checkInt := func(f Field, v *int, upper int) {
		if v == nil {
			return
		}
		if *v < 0 || (upper > 0 && *v > upper) {
			errs = append(errs, fmt.Errorf("%s: %w: %d", f, ErrOutOfRange, *v))
		}
	}
	checkFloat := func(f Field, v *float64) {
		if v == nil {
			return
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			errs = append(errs, fmt.Errorf("%s: %w: %v", f, ErrOutOfRange, *v))
		}
	}

	if p.Gender != nil {
		checkEnum(FieldGender, p.Gender.Valid(), string(*p.Gender))
	}
	checkInt(FieldAge, p.Age, maxAge)
	if p.Relationship != nil {
		checkEnum(FieldRelationship, p.Relationship.Valid(), string(*p.Relationship))
	}
	checkInt(FieldHouseholdSize, p.HouseholdSize, 0)
	checkFloat(FieldHomeArea, p.HomeArea)
	if p.HeatingType != nil {
		checkEnum(FieldHeatingType, p.HeatingType.Valid(), string(*p.HeatingType))
	}
	if p.HomeInsulation != nil {
		checkEnum(FieldHomeInsulation, p.HomeInsulation.Valid(), string(*p.HomeInsulation))
	}
	if p.CarType != nil {
		checkEnum(FieldCarType, p.CarType.Valid(), string(*p.CarType))
	}
	checkFloat(FieldWeeklyKm, p.WeeklyKm)
	if p.FlightFrequency != nil {
		checkEnum(FieldFlightFrequency, p.FlightFrequency.Valid(), string(*p.FlightFrequency))
	}
	if p.PublicTransportUsage != nil {
		checkEnum(FieldPublicTransportUsage, p.PublicTransportUsage.Valid(), string(*p.PublicTransportUsage))
	}
	if p.CruiseFrequency != nil {
		checkEnum(FieldCruiseFrequency, p.CruiseFrequency.Valid(), string(*p.CruiseFrequency))
	}
	checkInt(FieldMeatMealsPerWeek, p.MeatMealsPerWeek, 0)
	if p.BioLocalFrequency != nil {
		checkEnum(FieldBioLocalFrequency, p.BioLocalFrequency.Valid(), string(*p.BioLocalFrequency))
	}
	if p.FoodWasteFrequency != nil {
		checkEnum(FieldFoodWasteFrequency, p.FoodWasteFrequency.Valid(), string(*p.FoodWasteFrequency))
	}
	if p.ClothingFrequency != nil {
		checkEnum(FieldClothingFrequency, p.ClothingFrequency.Valid(), string(*p.ClothingFrequency))
	}
	if p.RepairFrequency != nil {
		checkEnum(FieldRepairFrequency, p.RepairFrequency.Valid(), string(*p.RepairFrequency))
	}
	if p.SecondHandFrequency != nil {
		checkEnum(FieldSecondHandFrequency, p.SecondHandFrequency.Valid(), string(*p.SecondHandFrequency))
	}
	if p.SortWaste != nil {
		checkEnum(FieldSortWaste, p.SortWaste.Valid(), string(*p.SortWaste))
	}
	checkInt(FieldTrashBagsPerWeek, p.TrashBagsPerWeek, 0)
	if p.LowPackagingFrequency != nil {
		checkEnum(FieldLowPackagingFrequency, p.LowPackagingFrequency.Valid(), string(*p.LowPackagingFrequency))
	}

	return errors.Join(errs...)
}
