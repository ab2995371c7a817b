package disputes

type Repo interface {
	List() ([]*Dispute, error)
	// Advance moves the dispute one step along its lifecycle and returns the new status
	Advance(id string) (Status, error)
}
