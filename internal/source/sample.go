package source

import "github.com/zjrosen/gridline/internal/tableengine"

// DepartmentOptions are the choices of the sample department column.
var DepartmentOptions = []string{"Sales", "Engineering", "HR", "General Affairs", "Accounting"}

// Sample returns the built-in users table shown when no source is configured.
func Sample() Dataset {
	cols := []tableengine.Column{
		{ID: "id", Header: "ID", Type: tableengine.Number, Editable: false, Hideable: true},
		{ID: "name", Header: "Name", Type: tableengine.Text, Editable: true, Hideable: true},
		{ID: "age", Header: "Age", Type: tableengine.Number, Editable: true, Hideable: true},
		{ID: "email", Header: "Email", Type: tableengine.Text, Editable: true, Hideable: true},
		{ID: "department", Header: "Department", Type: tableengine.Options, Editable: true, Hideable: true, Options: DepartmentOptions},
	}

	users := []struct {
		id         int
		name       string
		age        int
		email      string
		department string
	}{
		{1, "Taro Tanaka", 28, "tanaka@example.com", "Sales"},
		{2, "Hanako Suzuki", 34, "suzuki@example.com", "Engineering"},
		{3, "Ichiro Sato", 45, "sato@example.com", "HR"},
		{4, "Misaki Takahashi", 29, "takahashi@example.com", "Engineering"},
		{5, "Kenta Yamada", 38, "yamada@example.com", "Sales"},
	}

	records := make([]tableengine.Record, 0, len(users))
	for _, u := range users {
		records = append(records, tableengine.NewRecord(map[string]any{
			"id":         u.id,
			"name":       u.name,
			"age":        u.age,
			"email":      u.email,
			"department": u.department,
		}))
	}
	return Dataset{Columns: cols, Records: records}
}
