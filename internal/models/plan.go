package models

// Day день недели в плане (всегда латиница в нижнем регистре)
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// WeekDays канонический порядок дней недели
var WeekDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid проверяет, что день входит в перечисление
func (d Day) IsValid() bool {
	for _, wd := range WeekDays {
		if d == wd {
			return true
		}
	}
	return false
}

// NameRu returns Russian name for day
func (d Day) NameRu() string {
	switch d {
	case Monday:
		return "Понедельник"
	case Tuesday:
		return "Вторник"
	case Wednesday:
		return "Среда"
	case Thursday:
		return "Четверг"
	case Friday:
		return "Пятница"
	case Saturday:
		return "Суббота"
	case Sunday:
		return "Воскресенье"
	default:
		return string(d)
	}
}

// SessionType тип тренировки. Набор открытый: AI может вернуть любой тип
type SessionType string

const (
	SessionEasyRun  SessionType = "easy_run"
	SessionTempo    SessionType = "tempo"
	SessionInterval SessionType = "interval"
	SessionLongRun  SessionType = "long_run"
	SessionHyrox    SessionType = "hyrox"
	SessionCrossfit SessionType = "crossfit"
	SessionStrength SessionType = "strength"
	SessionRest     SessionType = "rest"
	SessionRecovery SessionType = "recovery"
)

// IsRest true только для дня отдыха, всё остальное считается тренировкой
func (t SessionType) IsRest() bool {
	return t == SessionRest
}

// Plan тренировочный план, сгенерированный AI
type Plan struct {
	Weeks []Week `json:"weeks"` // nil = массив недель отсутствует
}

// Week одна неделя плана
type Week struct {
	WeekNumber int       `json:"weekNumber"`
	Sessions   []Session `json:"sessions"`
	TotalLoad  TotalLoad `json:"totalLoad"`
}

// TotalLoad суммарная нагрузка недели
type TotalLoad struct {
	RunningKm float64 `json:"running_km"` // отсутствует = 0
}

// Session одна тренировка (или день отдыха)
type Session struct {
	Day         Day         `json:"day"`
	Type        SessionType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	DurationMin int         `json:"duration_min,omitempty"`
	DistanceKm  float64     `json:"distance_km,omitempty"`
}

// NonRestCount количество тренировок без учёта отдыха
func (w Week) NonRestCount() int {
	n := 0
	for _, s := range w.Sessions {
		if !s.Type.IsRest() {
			n++
		}
	}
	return n
}
