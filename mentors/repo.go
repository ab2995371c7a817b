package mentors

type Repo interface {
	List() ([]*Mentor, error)
}
