package config

// Command categories, used by help to group and order commands.
const (
	CategoryInformation = "🕯️ Information"
	CategoryUtilities   = "📢 Utilities"
	CategoryGameplay    = "🎲 Gameplay"
	CategorySettings    = "⚙️ Settings"
	CategoryMaintenance = "🛠️ Maintenance"
)

// CategoryWeights orders categories; lower comes first. Unknown categories
// sort last.
var CategoryWeights = map[string]int{
	CategoryInformation: 0,
	CategoryUtilities:   10,
	CategoryGameplay:    20,
	CategorySettings:    50,
	CategoryMaintenance: 60,
}

// CategoryWeight returns the weight of category.
func CategoryWeight(category string) int {
	if w, ok := CategoryWeights[category]; ok {
		return w
	}
	return 1000
}
