package testutil

// userData holds all data for a user row to be inserted.
type userData struct {
	id         int
	name       string
	age        *int
	email      string
	department string
}

func defaultUser(id int, name string) userData {
	return userData{id: id, name: name, department: "Sales"}
}

// UserOption configures a user row.
type UserOption func(*userData)

// Age sets the user's age. Without it the age is NULL.
func Age(age int) UserOption {
	return func(u *userData) { u.age = &age }
}

// Email sets the user's email.
func Email(email string) UserOption {
	return func(u *userData) { u.email = email }
}

// Department sets the user's department.
func Department(dept string) UserOption {
	return func(u *userData) { u.department = dept }
}
