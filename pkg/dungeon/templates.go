package dungeon

import (
	_ "embed"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// StatsTemplate - боевые характеристики шаблона
type StatsTemplate struct {
	MaxHP   int `yaml:"max_hp"`
	Defense int `yaml:"defense"`
	Power   int `yaml:"power"`
}

// ItemTemplate - свойства предмета. Нулевое значение означает "нет свойства".
type ItemTemplate struct {
	Healing   int  `yaml:"healing"`
	Ranged    int  `yaml:"ranged"`
	Damage    int  `yaml:"damage"`
	Radius    int  `yaml:"radius"`
	Confusion int  `yaml:"confusion"`
	Reusable  bool `yaml:"reusable"` // по умолчанию предмет расходуется
}

// SpawnWeight - вес в таблице появления
type SpawnWeight struct {
	Weight   int `yaml:"weight"`
	PerDepth int `yaml:"per_depth"`
}

// EntityTemplate определяет шаблон для создания сущности
type EntityTemplate struct {
	Name        string         `yaml:"name"`
	Glyph       string         `yaml:"glyph"`
	FG          string         `yaml:"fg"`
	BG          string         `yaml:"bg"`
	RenderOrder int            `yaml:"render_order"`
	Sight       int            `yaml:"sight"`
	Monster     bool           `yaml:"monster"`
	Stats       *StatsTemplate `yaml:"stats"`
	Item        *ItemTemplate  `yaml:"item"`
	Spawn       SpawnWeight    `yaml:"spawn"`
}

// Rune возвращает первый символ glyph.
func (t EntityTemplate) Rune() rune {
	r, _ := utf8.DecodeRuneInString(t.Glyph)
	return r
}

// Catalog - все шаблоны игры
type Catalog struct {
	Player EntityTemplate            `yaml:"player"`
	Spawns map[string]EntityTemplate `yaml:"spawns"`
}

// ParseCatalog разбирает YAML и проверяет, что каждому SpawnKind соответствует шаблон.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if c.Player.Stats == nil {
		return nil, fmt.Errorf("player template has no stats")
	}
	for _, kind := range AllSpawnKinds() {
		if _, ok := c.Spawns[kind.String()]; !ok {
			return nil, fmt.Errorf("template %q is missing", kind)
		}
	}
	return &c, nil
}

var defaultCatalog = mustParseCatalog(templatesYAML)

func mustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog возвращает встроенные шаблоны.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Template возвращает шаблон для варианта появления.
func (c *Catalog) Template(kind SpawnKind) (EntityTemplate, bool) {
	t, ok := c.Spawns[kind.String()]
	return t, ok
}
