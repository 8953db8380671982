package program

var messages = []string{
	"Discipline is doing it even when you don't feel like it.",
	"Your future self is watching. Make her proud.",
	"Small daily wins = massive transformation.",
	"You said you wouldn't quit. Prove it.",
	"Consistency over perfection. Show up today.",
	"The body you want is built in days like this.",
	"One focused hour at a time.",
	"Your vision requires daily action.",
	"Doubt kills more dreams than failure ever will.",
	"You're becoming her. One day at a time.",
}

// DailyMessage returns the motivational line shown on the given program day.
func DailyMessage(day int) string {
	if day < 0 {
		day = -day
	}
	return messages[day%len(messages)]
}
