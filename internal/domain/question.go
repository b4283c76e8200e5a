package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Group identifica una particion del catalogo ("PART 1".."PART 6").
type Group int

const (
	MinGroup Group = 1
	MaxGroup Group = 6
)

func (g Group) String() string {
	return fmt.Sprintf("PART %d", int(g))
}

// Valid indica si el grupo esta dentro de PART 1..PART 6.
func (g Group) Valid() bool {
	return g >= MinGroup && g <= MaxGroup
}

// ParseGroup acepta "PART 3", "PART3" o "part 3".
func ParseGroup(label string) (Group, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	if !strings.HasPrefix(normalized, "PART") {
		return 0, fmt.Errorf("invalid group label %q", label)
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(normalized, "PART")))
	if err != nil {
		return 0, fmt.Errorf("invalid group label %q", label)
	}
	g := Group(n)
	if !g.Valid() {
		return 0, fmt.Errorf("group out of range %q", label)
	}
	return g, nil
}

func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

type QuestionItem struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Group Group  `json:"group"`
}

// Catalog es la secuencia ordenada e inmutable de preguntas.
type Catalog struct {
	items []QuestionItem
	index map[int]int
}

// NewCatalog valida ids unicos, texto no vacio y grupos validos.
func NewCatalog(items []QuestionItem) (Catalog, error) {
	if len(items) == 0 {
		return Catalog{}, ErrCatalogEmpty
	}
	index := make(map[int]int, len(items))
	copied := make([]QuestionItem, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			return Catalog{}, fmt.Errorf("%w: question %d has no text", ErrCatalogMalformed, item.ID)
		}
		if !item.Group.Valid() {
			return Catalog{}, fmt.Errorf("%w: question %d has group %d", ErrCatalogMalformed, item.ID, int(item.Group))
		}
		if prev, ok := index[item.ID]; ok {
			return Catalog{}, fmt.Errorf("%w: question id %d repeated in %s and %s",
				ErrCatalogMalformed, item.ID, items[prev].Group, item.Group)
		}
		index[item.ID] = i
		copied[i] = item
	}
	return Catalog{items: copied, index: index}, nil
}

func (c Catalog) Len() int {
	return len(c.items)
}

// Items devuelve una copia en orden de catalogo.
func (c Catalog) Items() []QuestionItem {
	out := make([]QuestionItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c Catalog) Lookup(id int) (QuestionItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return QuestionItem{}, false
	}
	return c.items[i], true
}

// Answer es un par (pregunta, puntaje) tal como llega desde la UI.
type Answer struct {
	QuestionID int `json:"question_id"`
	Score      int `json:"score"`
}

// ResponseRecord es una respuesta validada, en orden de catalogo.
type ResponseRecord struct {
	QuestionID int   `json:"question_id"`
	Group      Group `json:"group"`
	Score      int   `json:"score"`
}
