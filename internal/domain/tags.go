package domain

import "dungeon-crawler/internal/ecs"

// Маркеры без данных хранятся битовой маской в ecs.World.
const (
	TagPlayer ecs.Tag = 1 << iota
	TagMonster
	TagBlocksTile
	TagItem
	TagConsumable
	// TagSerializeMe - сущность попадает в сохранение
	TagSerializeMe
)

var tagNames = map[ecs.Tag]string{
	TagPlayer:      "player",
	TagMonster:     "monster",
	TagBlocksTile:  "blocks_tile",
	TagItem:        "item",
	TagConsumable:  "consumable",
	TagSerializeMe: "serialize_me",
}

// TagNames возвращает имена выставленных маркеров (для логов).
func TagNames(m ecs.Tag) []string {
	names := make([]string, 0, len(tagNames))
	for bit := TagPlayer; bit <= TagSerializeMe; bit <<= 1 {
		if m.Has(bit) {
			names = append(names, tagNames[bit])
		}
	}
	return names
}
