package domain

// Style es una de las cuatro categorias de gestion que puede asignar el clasificador.
type Style string

const (
	StyleTopDog       Style = "Top Dog"
	StyleCollaborator Style = "Collaborator"
	StyleChillaxer    Style = "Chillaxer"
	StyleVisionary    Style = "Visionary"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Styles devuelve el orden canonico: tablas, ejes del grafico y desempates lo usan.
func Styles() []Style {
	return []Style{StyleTopDog, StyleCollaborator, StyleChillaxer, StyleVisionary}
}

// StyleTotals acumula el puntaje por estilo para una sola entrega.
type StyleTotals map[Style]int

// NewStyleTotals crea los totales con los cuatro estilos en cero.
func NewStyleTotals() StyleTotals {
	totals := make(StyleTotals, 4)
	for _, s := range Styles() {
		totals[s] = 0
	}
	return totals
}

// Sum suma todos los estilos.
func (t StyleTotals) Sum() int {
	sum := 0
	for _, v := range t {
		sum += v
	}
	return sum
}

// Clone copia los totales para que el resultado no comparta el mapa.
func (t StyleTotals) Clone() StyleTotals {
	out := make(StyleTotals, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
