package domain

var styleDescriptions = map[Style]string{
	StyleTopDog: `This manager prefers to be in control. Communication tends to be one-way. They say what to do and expect team members to do it. It's an autocratic approach to management.

When there's a crisis, or when things need to get done quickly, a take-charge approach to management can be very efficient. Sometimes we need a strong general to get us through the battle, or a decisive coach to dictate the next play. But this can come at the cost of team morale or employee welfare. Often these managers speak in an urgent tone that doesn't feel good to hear. They give feedback without considering the impact of their words. And they may miss others’ good ideas by failing to listen.

Top Dog management is best for urgent, high-stakes situations where a quick result is the biggest priority, provided the manager actually knows what's best and can keep their severity in check.`,

	StyleCollaborator: `This manager enjoys give-and-take with team members. Communication is two-way, and all ideas are welcome. This yields more perspectives, information, and choices. Decisions are made collectively, which empowers everyone. People like to have a say, and when they do, they have more ownership in the outcome.

Giving employees a voice will make them happy, but consensus takes time. When things need to be dealt with fast, this approach won’t work. And not all work is suited for groups. Collaborator management is best for brainstorming and making plans for work that’s not time-sensitive or urgent, with employees who have lots of experience.`,

	StyleChillaxer: `Sometimes referred to as a "laissez-faire leader," this manager prefers to hang back ("chill") and let the team do its thing. That doesn’t mean they don’t care. They just don’t want to get in the way. They see their team as smart and capable and want to empower them to take risks and be creative. They are willing to let employees make mistakes.

This style doesn’t work well with unmotivated employees or those lacking proper training, ability, or confidence. Chillaxer management is best for proven, skilled employees who have earned their independence with proven results.`,

	StyleVisionary: `Visionary managers are all about the big picture. Everything they do is about the organization’s mission. They inspire their teams by speaking in broader terms, giving purpose to their work.

Visionaries also focus a lot on employee growth and learning. Visionaries have a wonderful larger perspective but often miss the important details of day-to-day work. Visionary management is best when team members need inspiration, purpose, and personal growth.`,
}

// StyleDescription devuelve el texto fijo de un estilo.
func StyleDescription(s Style) (string, bool) {
	text, ok := styleDescriptions[s]
	return text, ok
}

// StyleDescriptions devuelve una copia de todas las descripciones.
func StyleDescriptions() map[Style]string {
	out := make(map[Style]string, len(styleDescriptions))
	for k, v := range styleDescriptions {
		out[k] = v
	}
	return out
}
