// internal/domain/models/employeetypes.go
package models

// Departments is the closed set of valid employee departments.
var Departments = []string{
	"Engineering",
	"Sales",
	"Marketing",
	"HR",
	"Finance",
	"Operations",
	"Support",
	"Executive",
}

// Posts is the closed set of valid employee job titles. Create/update
// requests carrying a post outside this list are rejected.
var Posts = []string{
	// Executive & board
	"Chief Executive Officer",
	"Managing Director",
	"Executive Director",
	"Chief Operating Officer",
	"Chief Financial Officer",
	"Chief Technology Officer",
	"Chief Information Officer",
	"Chief Data Officer",
	"Chief Security Officer",
	"Chief Marketing Officer",
	"Chief Growth Officer",
	"Chief Revenue Officer",
	"Chief Product Officer",
	"Chief Human Resources Officer",
	"Chief Legal Officer",
	"Chief Compliance Officer",
	"Chief Strategy Officer",
	"Chief Innovation Officer",
	"Chief Risk Officer",
	"Board Member",
	"Chairman",
	"Vice Chairman",

	// Senior leadership & directors
	"Director",
	"Technical Director",
	"Operations Director",
	"Finance Director",
	"Marketing Director",
	"Sales Director",
	"Product Director",
	"Engineering Director",
	"HR Director",
	"Legal Director",
	"Strategy Director",
	"Regional Director",
	"Country Director",

	// Management
	"Senior Manager",
	"Manager",
	"Assistant Manager",
	"Associate Manager",
	"Team Lead",
	"Project Manager",
	"Program Manager",
	"Delivery Manager",
	"Operations Manager",
	"Business Manager",

	// Technology & engineering
	"Principal Engineer",
	"Senior Software Engineer",
	"Software Engineer",
	"Junior Software Engineer",
	"Trainee Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Mobile App Developer",
	"Web Developer",
	"Game Developer",
	"DevOps Engineer",
	"Cloud Engineer",
	"Infrastructure Engineer",
	"Site Reliability Engineer",
	"QA Engineer",
	"Test Engineer",
	"Automation Engineer",
	"Security Engineer",
	"Data Engineer",
	"Machine Learning Engineer",
	"AI Engineer",
	"Blockchain Developer",
	"Embedded Systems Engineer",
	"Systems Architect",
	"Solutions Architect",
	"Technical Lead",
	"Engineering Manager",

	// Product & design
	"Product Manager",
	"Associate Product Manager",
	"Product Owner",
	"Business Analyst",
	"Technical Analyst",
	"UX Designer",
	"UI Designer",
	"Product Designer",
	"Interaction Designer",
	"Visual Designer",
	"Design Lead",
	"Creative Director",

	// Marketing
	"Marketing Manager",
	"Senior Marketing Manager",
	"Marketing Executive",
	"Marketing Coordinator",
	"Marketing Associate",
	"Digital Marketing Manager",
	"Digital Marketing Executive",
	"Performance Marketing Manager",
	"Growth Marketing Manager",
	"Brand Manager",
	"Content Manager",
	"Content Strategist",
	"Copywriter",
	"SEO Specialist",
	"SEM Specialist",
	"Social Media Manager",
	"Community Manager",
	"Influencer Marketing Manager",
	"PR Manager",
	"Communications Manager",

	// Sales & business development
	"Sales Manager",
	"Senior Sales Manager",
	"Business Development Manager",
	"Business Development Executive",
	"Sales Executive",
	"Sales Associate",
	"Account Manager",
	"Key Account Manager",
	"Client Relationship Manager",
	"Customer Success Manager",
	"Customer Success Executive",
	"Pre-Sales Engineer",
	"Inside Sales Executive",
	"Field Sales Executive",

	// Finance & accounts
	"Finance Manager",
	"Senior Accountant",
	"Accountant",
	"Junior Accountant",
	"Accounts Executive",
	"Accounts Assistant",
	"Financial Analyst",
	"Cost Accountant",
	"Tax Consultant",
	"Auditor",
	"Internal Auditor",
	"Payroll Executive",
	"Billing Executive",

	// Human resources & administration
	"HR Manager",
	"HR Business Partner",
	"HR Executive",
	"HR Generalist",
	"Talent Acquisition Manager",
	"Recruiter",
	"Training Manager",
	"Learning & Development Executive",
	"People Operations Manager",
	"Admin Manager",
	"Office Manager",
	"Office Administrator",
	"Office Staff",

	// Legal, compliance & risk
	"Legal Counsel",
	"Corporate Lawyer",
	"Compliance Officer",
	"Risk Manager",
	"Company Secretary",
	"Contracts Manager",
	"IP Manager",

	// Operations & support
	"Operations Executive",
	"Operations Coordinator",
	"Supply Chain Manager",
	"Procurement Manager",
	"Procurement Executive",
	"Logistics Manager",
	"Warehouse Manager",
	"Inventory Manager",
	"Facility Manager",

	// Customer support
	"Customer Support Manager",
	"Customer Support Lead",
	"Customer Support Executive",
	"Technical Support Engineer",
	"Helpdesk Executive",
	"Call Center Executive",

	// Research & strategy
	"Research Analyst",
	"Market Research Analyst",
	"Strategy Analyst",
	"Strategy Manager",
	"Policy Analyst",

	// Interns & trainees
	"Tech Intern",
	"Software Intern",
	"Data Intern",
	"Sales Intern",
	"Marketing Intern",
	"HR Intern",
	"Finance Intern",
	"Operations Intern",
	"Management Intern",
	"Graduate Trainee",
	"Management Trainee",

	// On-ground & maintenance
	"Security Officer",
	"Watchman",
	"Janitor",
	"Housekeeping Staff",
	"Maintenance Technician",
}

var (
	departmentSet = toSet(Departments)
	postSet       = toSet(Posts)
)

func toSet(vals []string) map[string]struct{} {
	s := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// ValidDepartment reports whether dept is in the closed department set.
func ValidDepartment(dept string) bool {
	_, ok := departmentSet[dept]
	return ok
}

// ValidPost reports whether post is in the closed job-title set.
func ValidPost(post string) bool {
	_, ok := postSet[post]
	return ok
}
