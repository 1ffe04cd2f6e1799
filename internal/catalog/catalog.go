package catalog

type Exercise struct {
	ID              string `json:"id"`
	Position        int    `json:"position"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	DurationSeconds int    `json:"durationSeconds"`
	RestSeconds     int    `json:"restSeconds"`
}

type Workout struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Difficulty      string     `json:"difficulty"`
	DurationMinutes int        `json:"durationMinutes"`
	Calories        int        `json:"calories"`
	ImageURL        string     `json:"imageUrl"`
	ExerciseCount   int        `json:"exerciseCount"`
	Exercises       []Exercise `json:"exercises,omitempty"`
}

type NutritionTip struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}
