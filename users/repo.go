package users

type Repo interface {
	List() ([]*User, error)
	GetByID(id string) (*User, error)
	SetStatus(id string, status Status) error
}
