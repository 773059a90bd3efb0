package models

// User is the account record, keyed in the store by phone number. Checks
// holds the ids of the checks this account owns; every id must reference an
// existing check whose UserPhone points back here.
type User struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	HashedPassword string   `json:"hashedPassword"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks"`
}

// UserView is the user record as sent to clients: the password digest never
// crosses the API boundary.
type UserView struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Phone        string   `json:"phone"`
	TOSAgreement bool     `json:"tosAgreement"`
	Checks       []string `json:"checks"`
}

// View strips the password digest from the record.
func (u *User) View() *UserView {
	return &UserView{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		TOSAgreement: u.TOSAgreement,
		Checks:       u.Checks,
	}
}
