package models

import "time"

// Workout — запись тренировки пользователя.
type Workout struct {
	ID             int       `json:"id"`
	UserUID        string    `json:"user_uid"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Duration       int       `json:"duration"` // минуты
	CaloriesBurned int       `json:"calories_burned"`
	Exercises      []string  `json:"exercises"`
	Notes          string    `json:"notes"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

// DummyWorkout используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Workout. Дата приходит строкой
// в формате 2006-01-02, чтобы её можно было валидировать и парсить вручную.
type DummyWorkout struct {
	Name           string   `json:"name" validate:"required"`
	Type           string   `json:"type" validate:"required"`
	Duration       int      `json:"duration" validate:"required,gt=0"`
	CaloriesBurned int      `json:"calories_burned" validate:"gte=0"`
	Exercises      []string `json:"exercises"`
	Notes          string   `json:"notes"`
	Date           string   `json:"date" validate:"required"`
}

// SleepLog — запись сна за сутки.
type SleepLog struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_uid"`
	Date       time.Time `json:"date"`
	Bedtime    string    `json:"bedtime"`     // HH:MM
	WakeupTime string    `json:"wakeup_time"` // HH:MM
	Duration   float64   `json:"duration"`    // часы
	Quality    int       `json:"quality"`     // 1..10
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// DummySleepLog — входные данные запроса создания записи сна.
type DummySleepLog struct {
	Date       string  `json:"date" validate:"required"`
	Bedtime    string  `json:"bedtime" validate:"required"`
	WakeupTime string  `json:"wakeup_time" validate:"required"`
	Duration   float64 `json:"duration" validate:"required,gt=0"`
	Quality    int     `json:"quality" validate:"required,gte=1,lte=10"`
	Notes      string  `json:"notes"`
}

// MoodLog — запись настроения за сутки.
type MoodLog struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	Date      time.Time `json:"date"`
	Mood      int       `json:"mood"`
	Energy    int       `json:"energy"`
	Stress    int       `json:"stress"`
	Anxiety   int       `json:"anxiety"`
	Happiness int       `json:"happiness"`
	Weather   string    `json:"weather"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyMoodLog — входные данные запроса создания записи настроения.
// Все шкалы от 1 до 10.
type DummyMoodLog struct {
	Date      string `json:"date" validate:"required"`
	Mood      int    `json:"mood" validate:"required,gte=1,lte=10"`
	Energy    int    `json:"energy" validate:"required,gte=1,lte=10"`
	Stress    int    `json:"stress" validate:"required,gte=1,lte=10"`
	Anxiety   int    `json:"anxiety" validate:"required,gte=1,lte=10"`
	Happiness int    `json:"happiness" validate:"required,gte=1,lte=10"`
	Weather   string `json:"weather"`
	Notes     string `json:"notes"`
}

// NutritionLog — запись приёма пищи.
type NutritionLog struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	Date      time.Time `json:"date"`
	MealType  string    `json:"meal_type"`
	FoodName  string    `json:"food_name"`
	Calories  int       `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Fiber     float64   `json:"fiber"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyNutritionLog — входные данные запроса создания записи питания.
type DummyNutritionLog struct {
	Date     string  `json:"date" validate:"required"`
	MealType string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodName string  `json:"food_name" validate:"required"`
	Calories int     `json:"calories" validate:"required,gt=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Fiber    float64 `json:"fiber" validate:"gte=0"`
}

// WeeklyStats — агрегированные данные за последнюю неделю для дашборда.
type WeeklyStats struct {
	Workouts      []*Workout      `json:"workouts"`
	SleepLogs     []*SleepLog     `json:"sleep_logs"`
	MoodLogs      []*MoodLog      `json:"mood_logs"`
	NutritionLogs []*NutritionLog `json:"nutrition_logs"`
}
