package dto

// GuardianInput carries the raw guardian data collected by the
// presentation layer for a preinscription submission.
type GuardianInput struct {
	FirstName      string `json:"firstName" yaml:"firstName"`
	MiddleName     string `json:"middleName,omitempty" yaml:"middleName,omitempty"`
	LastName       string `json:"lastName" yaml:"lastName"`
	SecondLastName string `json:"secondLastName,omitempty" yaml:"secondLastName,omitempty"`
	Age            int    `json:"age" yaml:"age"`
	NationalID     string `json:"nationalId" yaml:"nationalId"`
	Email          string `json:"email" yaml:"email"`
	Phone          string `json:"phone" yaml:"phone"`
}

// StudentInput carries the raw data of one student in a submission.
// The grade level is referenced by its unique name.
type StudentInput struct {
	FirstName      string `json:"firstName" yaml:"firstName"`
	MiddleName     string `json:"middleName,omitempty" yaml:"middleName,omitempty"`
	LastName       string `json:"lastName" yaml:"lastName"`
	SecondLastName string `json:"secondLastName,omitempty" yaml:"secondLastName,omitempty"`
	Age            int    `json:"age" yaml:"age"`
	NationalID     string `json:"nationalId" yaml:"nationalId"`
	GradeLevel     string `json:"gradeLevel" yaml:"gradeLevel"`
}

// SubmitPreinscriptionRequest bundles one guardian with 1-4 students
type SubmitPreinscriptionRequest struct {
	Guardian GuardianInput  `json:"guardian" yaml:"guardian"`
	Students []StudentInput `json:"students" yaml:"students"`
}

// PreinscriptionSummary is the payload returned after a submission or a
// status query.
type PreinscriptionSummary struct {
	Reference    string           `json:"reference" yaml:"reference"`
	Status       string           `json:"status" yaml:"status"`
	GuardianName string           `json:"guardianName" yaml:"guardianName"`
	Students     []StudentSummary `json:"students" yaml:"students"`
}

// StudentSummary is one student line of a PreinscriptionSummary
type StudentSummary struct {
	ID        int64  `json:"id" yaml:"id"`
	FullName  string `json:"fullName" yaml:"fullName"`
	Status    string `json:"status" yaml:"status"`
	GradeName string `json:"gradeName" yaml:"gradeName"`
	GroupName string `json:"groupName,omitempty" yaml:"groupName,omitempty"`
}
