// Package shop реализует магазин за монеты: титулы и расходники.
// models.go описывает каталог.
package shop

// Тип товара.
const (
	KindTitle      = "title"
	KindConsumable = "consumable"
)

// Item — позиция каталога.
type Item struct {
	Code string
	Kind string
	Name string
	Cost int64
}

// Catalog — фиксированный каталог магазина в порядке отображения.
var Catalog = []Item{
	{Code: "title_flame", Kind: KindTitle, Name: "🔥 Пламенный", Cost: 25},
	{Code: "title_shadow", Kind: KindTitle, Name: "🌑 Теневой", Cost: 40},
	{Code: "title_luck", Kind: KindTitle, Name: "🍀 Везучий", Cost: 55},
	{Code: "freeze_token", Kind: KindConsumable, Name: "🧊 Заморозка (1 защита серии)", Cost: 80},
}

// ItemByCode возвращает позицию каталога по коду.
func ItemByCode(code string) (Item, bool) {
	for _, it := range Catalog {
		if it.Code == code {
			return it, true
		}
	}
	return Item{}, false
}
