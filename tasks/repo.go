package tasks

type Repo interface {
	// ListByOwner returns the owner's tasks plus the shared demo listings
	ListByOwner(owner string) ([]*Task, error)
	ListOpen() ([]*Task, error)
	Create(owner, studentName string, task NewTask) (*Task, error)
	ListApplications(mentor string) ([]*Application, error)
	Apply(mentor string, app NewApplication) (*Application, error)
	Stats(mentor string) (MentorStats, error)
}
