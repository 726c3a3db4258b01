package domain

// Role is the closed set of caller roles decided once at the
// authentication boundary and passed into the engine as a typed value.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Identity is a verified (id, role) pair supplied by the credential
// collaborator. The engine performs no authentication of its own.
type Identity struct {
	Role Role
	ID   int64
}

func DoctorIdentity(id int64) Identity {
	return Identity{Role: RoleDoctor, ID: id}
}

func PatientIdentity(id int64) Identity {
	return Identity{Role: RolePatient, ID: id}
}
