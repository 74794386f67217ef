package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names one question of the questionnaire. Its string form is the
// camelCase key used in profile documents and the HTTP API.
type Field string

const (
	FieldGender                Field = "gender"
	FieldAge                   Field = "age"
	FieldRelationship          Field = "relationship"
	FieldHouseholdSize         Field = "householdSize"
	FieldHomeArea              Field = "homeArea"
	FieldHeatingType           Field = "heatingType"
	FieldHomeInsulation        Field = "homeInsulation"
	FieldOwnsCar               Field = "ownsCar"
	FieldCarType               Field = "carType"
	FieldWeeklyKm              Field = "weeklyKm"
	FieldFlightFrequency       Field = "flightFrequency"
	FieldPublicTransportUsage  Field = "publicTransportUsage"
	FieldCruiseFrequency       Field = "cruiseFrequency"
	FieldMeatMealsPerWeek      Field = "meatMealsPerWeek"
	FieldDailyAnimalProducts   Field = "dailyAnimalProducts"
	FieldBioLocalFrequency     Field = "bioLocalFrequency"
	FieldFoodWasteFrequency    Field = "foodWasteFrequency"
	FieldClothingFrequency     Field = "clothingFrequency"
	FieldBuyNewElectronics     Field = "buyNewElectronics"
	FieldRepairFrequency       Field = "repairFrequency"
	FieldSecondHandFrequency   Field = "secondHandFrequency"
	FieldSortWaste             Field = "sortWaste"
	FieldTrashBagsPerWeek      Field = "trashBagsPerWeek"
	FieldLowPackagingFrequency Field = "lowPackagingFrequency"
)

// Domain groups questions by life area.
type Domain string

const (
	DomainIdentity    Domain = "identity"
	DomainHousing     Domain = "housing"
	DomainTransport   Domain = "transport"
	DomainFood        Domain = "food"
	DomainConsumption Domain = "consumption"
	DomainWaste       Domain = "waste"
)

// ScoredDomains lists the domains that carry a sub-score, in display order.
// Identity answers are collected but never scored.
func ScoredDomains() []Domain {
	return []Domain{DomainHousing, DomainTransport, DomainFood, DomainConsumption, DomainWaste}
}

// Kind is the answer type of a field.
type Kind string

const (
	KindChoice  Kind = "choice"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// FieldSpec describes one question for the collaborator UIs.
type FieldSpec struct {
	Field    Field    `json:"field" yaml:"field"`
	Domain   Domain   `json:"domain" yaml:"domain"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Question string   `json:"question" yaml:"question"`
	Unit     string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Values   []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// Answer assigns Value to Field. A nil Value means "unanswered".
//
// Value carries the field's Go type: the enum type (or its string form)
// for choices, int for integers, float64 for numbers and bool for booleans.
type Answer struct {
	Field Field
	Value any
}

type accessor struct {
	spec   FieldSpec
	parse  func(raw string) (any, error)
	set    func(p *Profile, v any) error
	value  func(p *Profile) (any, bool)
	format func(p *Profile) (string, bool)
}

//nolint:gochecknoglobals // Static field catalogue.
var fieldOrder = []Field{
	FieldGender, FieldAge, FieldRelationship,
	FieldHouseholdSize, FieldHomeArea, FieldHeatingType, FieldHomeInsulation,
	FieldOwnsCar, FieldCarType, FieldWeeklyKm, FieldFlightFrequency, FieldPublicTransportUsage, FieldCruiseFrequency,
	FieldMeatMealsPerWeek, FieldDailyAnimalProducts, FieldBioLocalFrequency, FieldFoodWasteFrequency,
	FieldClothingFrequency, FieldBuyNewElectronics, FieldRepairFrequency, FieldSecondHandFrequency,
	FieldSortWaste, FieldTrashBagsPerWeek, FieldLowPackagingFrequency,
}

//nolint:gochecknoglobals // Static field catalogue.
var accessors = map[Field]accessor{
	FieldGender: enumAccessor(FieldGender, DomainIdentity, "Vous êtes ?",
		func(p *Profile) **Gender { return &p.Gender }, Genders),
	FieldAge: intAccessor(FieldAge, DomainIdentity, "Quel âge avez-vous ?", "ans",
		func(p *Profile) **int { return &p.Age }, maxAge),
	FieldRelationship: enumAccessor(FieldRelationship, DomainIdentity, "Êtes-vous en couple ?",
		func(p *Profile) **Relationship { return &p.Relationship }, Relationships),

	FieldHouseholdSize: intAccessor(FieldHouseholdSize, DomainHousing, "Combien de personnes vivent dans votre foyer ?", "personnes",
		func(p *Profile) **int { return &p.HouseholdSize }, 0),
	FieldHomeArea: floatAccessor(FieldHomeArea, DomainHousing, "Quelle est la surface de votre logement ?", "m²",
		func(p *Profile) **float64 { return &p.HomeArea }),
	FieldHeatingType: enumAccessor(FieldHeatingType, DomainHousing, "Quel est votre mode de chauffage principal ?",
		func(p *Profile) **HeatingType { return &p.HeatingType }, HeatingTypes),
	FieldHomeInsulation: enumAccessor(FieldHomeInsulation, DomainHousing, "Votre logement est-il bien isolé ?",
		func(p *Profile) **Insulation { return &p.HomeInsulation }, Insulations),

	FieldOwnsCar: boolAccessor(FieldOwnsCar, DomainTransport, "Possédez-vous une voiture ?",
		func(p *Profile) **bool { return &p.OwnsCar }),
	FieldCarType: enumAccessor(FieldCarType, DomainTransport, "Quel type de voiture ?",
		func(p *Profile) **CarType { return &p.CarType }, CarTypes),
	FieldWeeklyKm: floatAccessor(FieldWeeklyKm, DomainTransport, "Combien de kilomètres parcourez-vous par semaine ?", "km",
		func(p *Profile) **float64 { return &p.WeeklyKm }),
	FieldFlightFrequency: enumAccessor(FieldFlightFrequency, DomainTransport, "Combien de vols prenez-vous par an ?",
		func(p *Profile) **TripFrequency { return &p.FlightFrequency }, TripFrequencies),
	FieldPublicTransportUsage: enumAccessor(FieldPublicTransportUsage, DomainTransport, "Utilisez-vous les transports en commun ou doux ?",
		func(p *Profile) **Usage { return &p.PublicTransportUsage }, Usages),
	FieldCruiseFrequency: enumAccessor(FieldCruiseFrequency, DomainTransport, "Combien de croisières faites-vous ?",
		func(p *Profile) **TripFrequency { return &p.CruiseFrequency }, TripFrequencies),

	FieldMeatMealsPerWeek: intAccessor(FieldMeatMealsPerWeek, DomainFood, "Combien de repas avec viande par semaine ?", "repas",
		func(p *Profile) **int { return &p.MeatMealsPerWeek }, 0),
	FieldDailyAnimalProducts: boolAccessor(FieldDailyAnimalProducts, DomainFood, "Consommez-vous des produits animaux chaque jour ?",
		func(p *Profile) **bool { return &p.DailyAnimalProducts }),
	FieldBioLocalFrequency: enumAccessor(FieldBioLocalFrequency, DomainFood, "Achetez-vous bio ou local ?",
		func(p *Profile) **Usage { return &p.BioLocalFrequency }, Usages),
	FieldFoodWasteFrequency: enumAccessor(FieldFoodWasteFrequency, DomainFood, "Vous arrive-t-il de jeter de la nourriture ?",
		func(p *Profile) **Occurrence { return &p.FoodWasteFrequency }, Occurrences),

	FieldClothingFrequency: enumAccessor(FieldClothingFrequency, DomainConsumption, "À quelle fréquence achetez-vous des vêtements neufs ?",
		func(p *Profile) **ClothingFrequency { return &p.ClothingFrequency }, ClothingFrequencies),
	FieldBuyNewElectronics: boolAccessor(FieldBuyNewElectronics, DomainConsumption, "Achetez-vous des appareils électroniques neufs ?",
		func(p *Profile) **bool { return &p.BuyNewElectronics }),
	FieldRepairFrequency: enumAccessor(FieldRepairFrequency, DomainConsumption, "Faites-vous réparer vos objets ?",
		func(p *Profile) **Occurrence { return &p.RepairFrequency }, Occurrences),
	FieldSecondHandFrequency: enumAccessor(FieldSecondHandFrequency, DomainConsumption, "Achetez-vous d'occasion ?",
		func(p *Profile) **Usage { return &p.SecondHandFrequency }, Usages),

	FieldSortWaste: enumAccessor(FieldSortWaste, DomainWaste, "Triez-vous vos déchets ?",
		func(p *Profile) **SortPractice { return &p.SortWaste }, SortPractices),
	FieldTrashBagsPerWeek: intAccessor(FieldTrashBagsPerWeek, DomainWaste, "Combien de sacs poubelle par semaine ?", "sacs",
		func(p *Profile) **int { return &p.TrashBagsPerWeek }, 0),
	FieldLowPackagingFrequency: enumAccessor(FieldLowPackagingFrequency, DomainWaste, "Choisissez-vous des produits peu emballés ?",
		func(p *Profile) **Usage { return &p.LowPackagingFrequency }, Usages),
}

// Fields returns the questionnaire catalogue in question order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, 0, len(fieldOrder))
	for _, f := range fieldOrder {
		out = append(out, accessors[f].spec)
	}
	return out
}

// Lookup returns the catalogue entry for a field key.
func Lookup(key string) (FieldSpec, error) {
	acc, ok := accessors[Field(strings.TrimSpace(key))]
	if !ok {
		return FieldSpec{}, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return acc.spec, nil
}

// ParseAnswer normalises raw user input for field into an Answer.
//
// Empty input, unparseable numbers and negative numbers all become an
// unanswered (nil) value so that NaN or garbage never reaches scoring.
// Choice and boolean fields are closed sets: an unrecognised value returns
// ErrUnknownValue.
func ParseAnswer(field Field, raw string) (Answer, error) {
	acc, ok := accessors[field]
	if !ok {
		return Answer{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if strings.TrimSpace(raw) == "" {
		return Answer{Field: field}, nil
	}
	v, err := acc.parse(raw)
	if err != nil {
		return Answer{}, fmt.Errorf("field %s: %w", field, err)
	}
	return Answer{Field: field, Value: v}, nil
}

func enumAccessor[T ~string](
	field Field, domain Domain, question string,
	ref func(*Profile) **T, values func() []T,
) accessor {
	return accessor{
		spec: FieldSpec{
			Field: field, Domain: domain, Kind: KindChoice,
			Question: question, Values: enumStrings(values()),
		},
		parse: func(raw string) (any, error) {
			v, err := parseEnum(raw, values())
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		set: func(p *Profile, v any) error {
			dst := ref(p)
			switch t := v.(type) {
			case nil:
				*dst = nil
			case T:
				if !contains(values(), t) {
					return fmt.Errorf("%w: %q", ErrUnknownValue, string(t))
				}
				*dst = &t
			case string:
				parsed, err := parseEnum(t, values())
				if err != nil {
					return err
				}
				*dst = &parsed
			default:
				return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
			}
			return nil
		},
		value: func(p *Profile) (any, bool) {
			if v := *ref(p); v != nil {
				return *v, true
			}
			return nil, false
		},
		format: func(p *Profile) (string, bool) {
			if v := *ref(p); v != nil {
				return string(*v), true
			}
			return "", false
		},
	}
}

func intAccessor(field Field, domain Domain, question, unit string, ref func(*Profile) **int, upper int) accessor {
	inRange := func(n int) bool { return n >= 0 && (upper == 0 || n <= upper) }
	return accessor{
		spec: FieldSpec{Field: field, Domain: domain, Kind: KindInteger, Question: question, Unit: unit},
		parse: func(raw string) (any, error) {
			f, ok := parseNumber(raw)
			if !ok || f != math.Trunc(f) || f > math.MaxInt32 || !inRange(int(f)) {
				return nil, nil //nolint:nilnil // invalid numeric input normalises to unanswered
			}
			return int(f), nil
		},
		set: func(p *Profile, v any) error {
			dst := ref(p)
			switch t := v.(type) {
			case nil:
				*dst = nil
			case int:
				if !inRange(t) {
					return fmt.Errorf("%w: %d", ErrOutOfRange, t)
				}
				*dst = &t
			default:
				return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
			}
			return nil
		},
		value: func(p *Profile) (any, bool) {
			if v := *ref(p); v != nil {
				return *v, true
			}
			return nil, false
		},
		format: func(p *Profile) (string, bool) {
			if v := *ref(p); v != nil {
				return strconv.Itoa(*v), true
			}
			return "", false
		},
	}
}

func floatAccessor(field Field, domain Domain, question, unit string, ref func(*Profile) **float64) accessor {
	return accessor{
		spec: FieldSpec{Field: field, Domain: domain, Kind: KindNumber, Question: question, Unit: unit},
		parse: func(raw string) (any, error) {
			f, ok := parseNumber(raw)
			if !ok || f < 0 {
				return nil, nil //nolint:nilnil // invalid numeric input normalises to unanswered
			}
			return f, nil
		},
		set: func(p *Profile, v any) error {
			dst := ref(p)
			switch t := v.(type) {
			case nil:
				*dst = nil
			case float64:
				if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
					return fmt.Errorf("%w: %v", ErrOutOfRange, t)
				}
				*dst = &t
			case int:
				if t < 0 {
					return fmt.Errorf("%w: %d", ErrOutOfRange, t)
				}
				f := float64(t)
				*dst = &f
			default:
				return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
			}
			return nil
		},
		value: func(p *Profile) (any, bool) {
			if v := *ref(p); v != nil {
				return *v, true
			}
			return nil, false
		},
		format: func(p *Profile) (string, bool) {
			if v := *ref(p); v != nil {
				return strconv.FormatFloat(*v, 'f', -1, 64), true
			}
			return "", false
		},
	}
}

func boolAccessor(field Field, domain Domain, question string, ref func(*Profile) **bool) accessor {
	return accessor{
		spec: FieldSpec{
			Field: field, Domain: domain, Kind: KindBoolean,
			Question: question, Values: []string{"oui", "non"},
		},
		parse: func(raw string) (any, error) {
			return parseBool(raw)
		},
		set: func(p *Profile, v any) error {
			dst := ref(p)
			switch t := v.(type) {
			case nil:
				*dst = nil
			case bool:
				*dst = &t
			default:
				return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
			}
			return nil
		},
		value: func(p *Profile) (any, bool) {
			if v := *ref(p); v != nil {
				return *v, true
			}
			return nil, false
		},
		format: func(p *Profile) (string, bool) {
			v := *ref(p)
			if v == nil {
				return "", false
			}
			if *v {
				return "oui", true
			}
			return "non", true
		},
	}
}

// parseNumber accepts both "80.5" and the French "80,5".
func parseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "oui", "yes", "true", "1", "o", "y":
		return true, nil
	case "non", "no", "false", "0", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q (want oui or non)", ErrUnknownValue, raw)
	}
}
