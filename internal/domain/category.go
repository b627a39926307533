package domain

// Category is a stored category name. Categories are appended on demand when
// an admin saves a product with a name not yet present; they are never
// updated or deleted.
type Category struct {
	ID   string `json:"id" mapstructure:"-"`
	Name string `json:"name" mapstructure:"name"`
}

func (c Category) Record() Record {
	return Record{"name": c.Name}
}

func CategoryFromRecord(id string, rec Record) Category {
	name, _ := rec["name"].(string)
	return Category{ID: id, Name: name}
}
