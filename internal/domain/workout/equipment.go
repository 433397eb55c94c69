package workout

import "strings"

// Equipment tags
const (
	EquipmentBarbell    = "barbell"
	EquipmentGymnastics = "gymnastics"
	EquipmentBodyweight = "bodyweight"
)

var barbellKeywords = []string{
	"barbell",
	"snatch",
	"clean",
	"jerk",
	"deadlift",
	"squat clean",
	"front squat",
	"back squat",
	"overhead squat",
	"thruster",
	"push press",
	"shoulder to overhead",
	"ground to overhead",
	"bench press",
	"strict press",
}

var gymnasticsKeywords = []string{
	"pull-up",
	"pullup",
	"pull up",
	"chest to bar",
	"chest-to-bar",
	"toes to bar",
	"toes-to-bar",
	"muscle up",
	"muscle-up",
	"ring dip",
	"handstand",
	"rope climb",
	"pegboard",
	"ghd",
	"wall walk",
	"l-sit",
}

// DetectEquipment classifies a workout from its exercise names. A name can
// match both barbell and gymnastics; bodyweight is returned only when
// neither matched.
func DetectEquipment(exercises []string) []string {
	var barbell, gymnastics bool
	for _, name := range exercises {
		n := strings.ToLower(name)
		if !barbell && containsAny(n, barbellKeywords) {
			barbell = true
		}
		if !gymnastics && containsAny(n, gymnasticsKeywords) {
			gymnastics = true
		}
	}

	tags := make([]string, 0, 2)
	if barbell {
		tags = append(tags, EquipmentBarbell)
	}
	if gymnastics {
		tags = append(tags, EquipmentGymnastics)
	}
	if len(tags) == 0 {
		tags = append(tags, EquipmentBodyweight)
	}
	return tags
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
