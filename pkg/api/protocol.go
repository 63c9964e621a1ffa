package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Это полный снимок того, что должен нарисовать внешний рендерер после тика.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// State текущая фаза сессии (MAIN_MENU, AWAITING_INPUT, ...).
	State string `json:"state"`

	// Depth глубина текущего уровня (0, если игра не начата).
	Depth int `json:"depth,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Entities сущности на видимых клетках в порядке отрисовки.
	Entities []EntityView `json:"entities,omitempty"`

	// Player характеристики игрока.
	Player *StatsView `json:"player,omitempty"`

	// Logs последние сообщения журнала, новые в конце.
	Logs []LogEntry `json:"logs,omitempty"`

	// Menu открытое меню (главное, инвентарь, выбрасывание).
	Menu *MenuView `json:"menu,omitempty"`

	// Targets клетки, доступные для выбора цели.
	Targets []PointView `json:"targets,omitempty"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Kind - wall, floor, down_stairs
	Kind string `json:"kind"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO для игровой сущности на карте.
type EntityView struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Glyph       string `json:"glyph"`
	FG          string `json:"fg"`
	BG          string `json:"bg"`
	RenderOrder int    `json:"renderOrder"`
}

// StatsView это DTO для характеристик игрока.
type StatsView struct {
	HP      int  `json:"hp"`
	MaxHP   int  `json:"maxHp"`
	Defense int  `json:"defense"`
	Power   int  `json:"power"`
	IsDead  bool `json:"isDead"`
}

// LogEntry представляет одну запись в игровом журнале.
type LogEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MenuView - пункты меню и текущий выбор
type MenuView struct {
	Title    string   `json:"title"`
	Options  []string `json:"options"`
	Selected int      `json:"selected"`
}

type PointView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: MOVE, PICKUP, INVENTORY, DROP_MENU, DESCEND, WAIT,
	// SAVE, MENU_UP, MENU_DOWN, MENU_SELECT, ESCAPE, SELECT_ITEM, TARGET, TARGET_CANCEL.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (e.g. MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для действий, нацеленных на точку на карте (TARGET).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemPayload - выбор пункта в меню предметов по номеру.
type ItemPayload struct {
	Index int `json:"index"`
}
