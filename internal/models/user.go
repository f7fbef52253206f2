package models

// Address es una dirección de envío guardada en el perfil
type Address struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"is_default"`
}

// User es el perfil público; la contraseña nunca forma parte de él
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Addresses []Address `json:"addresses,omitempty"`
}

// SignupRequest son los datos del formulario de registro
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ProfileUpdate representa los campos actualizables del perfil
type ProfileUpdate struct {
	Email     *string   `json:"email,omitempty"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}

// IsEmpty indica que no trae ningún campo
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil &&
		u.Phone == nil && u.Addresses == nil
}

// Apply hace un merge superficial de u sobre una copia de user
func (u ProfileUpdate) Apply(user User) User {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.Addresses != nil {
		user.Addresses = u.Addresses
	}
	return user
}
