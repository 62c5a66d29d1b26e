package domain

import "strconv"

// Tablas de códigos de estilo de vida. El mapeo es no oficial (ingeniería
// inversa del cliente móvil), cerrado y versionado acá como data: un código
// desconocido degrada a su forma numérica cruda, nunca falla.

// Nombres de campo filtrables tal como los expone la API propia.
const (
	FieldDrinking    = "drinking"
	FieldSmoking     = "smoking"
	FieldChildren    = "children"
	FieldFamilyPlans = "family_plans"
)

var drinkingLabels = map[int]string{
	1: "Yes",
	2: "Sometimes",
	3: "No",
	4: "Prefer not to say",
}

var smokingLabels = map[int]string{
	1: "Yes",
	2: "Sometimes",
	3: "No",
	4: "Prefer not to say",
}

var childrenLabels = map[int]string{
	1: "Don't have children",
	2: "Have children",
	3: "Prefer not to say",
}

var familyPlanLabels = map[int]string{
	1: "Don't want children",
	2: "Want children",
	3: "Open to children",
	4: "Not sure yet",
	5: "Prefer not to say",
}

var lifestyleTables = map[string]map[int]string{
	FieldDrinking:    drinkingLabels,
	FieldSmoking:     smokingLabels,
	FieldChildren:    childrenLabels,
	FieldFamilyPlans: familyPlanLabels,
}

// LifestyleLabel devuelve la etiqueta humana para un código de campo.
// Campo o código desconocido degradan al valor crudo.
func LifestyleLabel(field string, code int) string {
	if table, ok := lifestyleTables[field]; ok {
		if label, ok := table[code]; ok {
			return label
		}
	}
	return strconv.Itoa(code)
}

// LifestyleFields lista los campos con tabla de códigos, en orden estable.
func LifestyleFields() []string {
	return []string{FieldDrinking, FieldSmoking, FieldChildren, FieldFamilyPlans}
}

// LifestyleValue devuelve el código crudo de un campo en el candidato
// y false si el campo no está informado.
func LifestyleValue(c ProfileCandidate, field string) (int, bool) {
	var v int
	switch field {
	case FieldDrinking:
		v = c.Drinking
	case FieldSmoking:
		v = c.Smoking
	case FieldChildren:
		v = c.Children
	case FieldFamilyPlans:
		v = c.FamilyPlans
	default:
		return 0, false
	}
	return v, v != 0
}
