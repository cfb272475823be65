package vocabulary

// defaultEntries 内置分类体系，声明顺序即分类优先级
var defaultEntries = []Entry{
	{
		Category: "Software Engineer",
		Keywords: []string{"developer", "software", "python", "flask", "java", "backend", "frontend", "api", "django"},
		Skills:   []string{"Python", "Java", "C++", "Git", "Flask", "SQL", "JavaScript", "REST API", "OOP"},
	},
	{
		Category: "Full Stack Developer",
		Keywords: []string{"full stack", "frontend", "backend", "react", "node.js", "angular", "express"},
		Skills:   []string{"React", "Node.js", "Express", "MongoDB", "HTML", "CSS", "Redux"},
	},
	{
		Category: "Data Scientist",
		Keywords: []string{"machine learning", "data", "pandas", "numpy", "analysis", "statistics", "deep learning"},
		Skills:   []string{"Pandas", "NumPy", "Scikit-learn", "NLP", "Deep Learning", "TensorFlow", "Matplotlib", "Seaborn"},
	},
	{
		Category: "AI/ML Engineer",
		Keywords: []string{"deep learning", "tensorflow", "pytorch", "computer vision", "mlops", "bert", "transformers"},
		Skills:   []string{"TensorFlow", "PyTorch", "Keras", "CNN", "RNN", "Transformer", "MLOps", "Computer Vision"},
	},
	{
		Category: "DevOps Engineer",
		Keywords: []string{"ci/cd", "jenkins", "docker", "kubernetes", "infrastructure", "aws", "ansible"},
		Skills:   []string{"Docker", "Kubernetes", "CI/CD", "AWS", "Terraform", "Jenkins", "GitHub Actions"},
	},
	{
		Category: "UI/UX Designer",
		Keywords: []string{"figma", "wireframe", "prototyping", "user research", "adobe xd", "interaction design"},
		Skills:   []string{"Figma", "Adobe XD", "Sketch", "Prototyping", "Wireframing", "User Research"},
	},
	{
		Category: "Marketing",
		Keywords: []string{"seo", "content", "marketing", "branding", "social media", "adwords", "digital strategy"},
		Skills:   []string{"SEO", "Content Writing", "Google Analytics", "Campaign Management", "Social Media", "Email Marketing"},
	},
	{
		Category: "Finance",
		Keywords: []string{"accounting", "finance", "tax", "audit", "investment", "budgeting"},
		Skills:   []string{"Accounting", "Excel", "Tax", "Budgeting", "Financial Modeling", "Investment Analysis"},
	},
	{
		Category: "HR",
		Keywords: []string{"recruitment", "payroll", "human resource", "employee engagement", "interview scheduling"},
		Skills:   []string{"Recruitment", "Payroll", "Employee Engagement", "Interviewing", "Training"},
	},
	{
		Category: "Mechanical Engineer",
		Keywords: []string{"mechanical", "solidworks", "autocad", "cad", "catia"},
		Skills:   []string{"SolidWorks", "AutoCAD", "Ansys", "CAD", "Thermodynamics"},
	},
	{
		Category: "Electrical Engineer",
		Keywords: []string{"electrical", "pcb", "microcontroller", "power systems", "proteus"},
		Skills:   []string{"PCB", "Microcontroller", "Circuit", "Proteus", "Power Systems"},
	},
	{
		Category: "Civil Engineer",
		Keywords: []string{"civil", "construction", "site", "structural", "estimation"},
		Skills:   []string{"AutoCAD", "Construction", "Structural Analysis", "Project Estimation"},
	},
	{
		Category: "Educator",
		Keywords: []string{"teaching", "teacher", "curriculum", "lesson plan", "pedagogy"},
		Skills:   []string{"Teaching", "Curriculum Design", "Lesson Planning", "Assessment"},
	},
	{
		Category: "Project Manager",
		Keywords: []string{"scrum", "agile", "timeline", "milestones", "pmp", "kanban"},
		Skills:   []string{"Agile", "Scrum", "Leadership", "Risk Management", "Planning", "Jira"},
	},
	{
		Category: "Business Analyst",
		Keywords: []string{"requirement", "stakeholder", "gap analysis", "process modeling", "business case"},
		Skills:   []string{"Requirement Gathering", "SQL", "Data Visualization", "Gap Analysis", "UML"},
	},
	{
		Category: "Sales Executive",
		Keywords: []string{"crm", "cold calling", "negotiation", "lead generation", "pitching"},
		Skills:   []string{"CRM", "Sales Pitch", "Negotiation", "Lead Generation", "Cold Calling"},
	},
	{
		Category: "Legal Advisor",
		Keywords: []string{"contract", "litigation", "legal", "compliance", "case law"},
		Skills:   []string{"Contract Drafting", "Compliance", "Litigation", "Legal Research"},
	},
	{
		Category: "Healthcare Professional",
		Keywords: []string{"patient", "medical", "clinical", "nursing", "diagnosis", "healthcare"},
		Skills:   []string{"Clinical", "Diagnosis", "Patient Care", "Medical Records"},
	},
	{
		Category: "Content Writer",
		Keywords: []string{"content writing", "copywriting", "blogs", "proofreading", "editing", "seo writing"},
		Skills:   []string{"Copywriting", "Proofreading", "Editing", "SEO Writing", "Creative Writing"},
	},
}

// Default 返回内置分类体系构建的词表
func Default() *Store {
	s, err := New(defaultEntries)
	if err != nil {
		// 内置数据在编译期固定，出错说明代码本身有问题
		panic("内置词表无效: " + err.Error())
	}
	return s
}
