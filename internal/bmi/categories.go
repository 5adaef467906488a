package bmi

// CategoryInfo 描述一个分类档位的展示信息。
type CategoryInfo struct {
	Category Category
	Label    string
	Icon     string
	Color    string
	Range    string
	Tips     Tips
}

var categoryTable = [...]CategoryInfo{
	{
		Category: CategoryUnderweight,
		Label:    "Underweight",
		Icon:     "🏋️",
		Color:    "#3498db",
		Range:    "< 18.5",
		Tips: Tips{
			"Increase calorie intake with healthy foods like nuts, seeds, and avocados.",
			"Include protein-rich foods like eggs, fish, chicken, and legumes.",
			"Engage in strength training to build muscle mass.",
			"Eat smaller, frequent meals throughout the day.",
			"Consult a dietitian for a personalized meal plan.",
		},
	},
	{
		Category: CategoryHealthy,
		Label:    "Healthy Weight",
		Icon:     "✅",
		Color:    "#2ecc71",
		Range:    "18.5 - 24.9",
		Tips: Tips{
			"Maintain a balanced diet with fruits, vegetables, and whole grains.",
			"Exercise regularly (at least 150 minutes of moderate activity per week).",
			"Monitor your weight monthly to stay on track.",
			"Stay hydrated by drinking at least 2-3 liters of water daily.",
			"Get 7-9 hours of quality sleep every night.",
		},
	},
	{
		Category: CategoryOverweight,
		Label:    "Overweight",
		Icon:     "⚠️",
		Color:    "#f1c40f",
		Range:    "25 - 29.9",
		Tips: Tips{
			"Reduce calorie intake by avoiding sugary and processed foods.",
			"Increase physical activity (e.g., walking, jogging, or cycling).",
			"Focus on portion control during meals.",
			"Include more fiber-rich foods like vegetables and whole grains.",
			"Limit alcohol consumption and avoid late-night snacking.",
		},
	},
	{
		Category: CategoryObese,
		Label:    "Obese",
		Icon:     "❌",
		Color:    "#e74c3c",
		Range:    "≥ 30",
		Tips: Tips{
			"Consult a doctor or dietitian for a personalized weight-loss plan.",
			"Focus on portion control and avoid overeating.",
			"Engage in daily physical activity (e.g., 30 minutes of walking).",
			"Avoid sugary drinks and opt for water or herbal teas.",
			"Track your progress weekly to stay motivated.",
		},
	},
}

var categoryIndex = func() map[Category]int {
	idx := make(map[Category]int, len(categoryTable))
	for i, info := range categoryTable {
		idx[info.Category] = i
	}
	return idx
}()

// Categories returns the bands in ascending BMI order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryTable))
	copy(out, categoryTable[:])
	return out
}

// Lookup returns the display info for c. Unknown categories report ok=false.
func Lookup(c Category) (CategoryInfo, bool) {
	i, ok := categoryIndex[c]
	if !ok {
		return CategoryInfo{}, false
	}
	return categoryTable[i], true
}
