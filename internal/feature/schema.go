package feature

// Nombres de las features que espera el endpoint de prediccion.
const (
	Gender                = "Gender"
	Country               = "Country"
	Occupation            = "Occupation"
	SelfEmployed          = "self_employed"
	FamilyHistory         = "family_history"
	Treatment             = "treatment"
	DaysIndoors           = "Days_Indoors"
	GrowingStress         = "Growing_Stress"
	ChangesHabits         = "Changes_Habits"
	MentalHealthHistory   = "Mental_Health_History"
	MoodSwings            = "Mood_Swings"
	CopingStruggles       = "Coping_Struggles"
	WorkInterest          = "Work_Interest"
	SocialWeakness        = "Social_Weakness"
	MentalHealthInterview = "mental_health_interview"
	CareOptions           = "care_options"
)

// Count es la longitud fija de todo FeatureVector.
const Count = 16

// schema define el contrato posicional del vector. Es un array para que
// nadie pueda reordenarlo ni agregarle elementos en runtime.
var schema = [Count]string{
	Gender,
	Country,
	Occupation,
	SelfEmployed,
	FamilyHistory,
	Treatment,
	DaysIndoors,
	GrowingStress,
	ChangesHabits,
	MentalHealthHistory,
	MoodSwings,
	CopingStruggles,
	WorkInterest,
	SocialWeakness,
	MentalHealthInterview,
	CareOptions,
}

// Names devuelve una copia de los nombres en orden canonico.
func Names() []string {
	out := make([]string, Count)
	copy(out, schema[:])
	return out
}

// Name devuelve el nombre en la posicion i. Hace panic si i esta fuera de rango.
func Name(i int) string {
	return schema[i]
}

// Index devuelve la posicion de name en el schema o -1 si no existe.
func Index(name string) int {
	for i, n := range schema {
		if n == name {
			return i
		}
	}
	return -1
}

// IsKnown indica si name pertenece al schema.
func IsKnown(name string) bool {
	return Index(name) >= 0
}
