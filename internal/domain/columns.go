package domain

// Columnas requeridas de cada CSV, en el orden en que se reportan y concatenan.
var (
	LinkedInColumns = []string{"name", "about", "posts", "experience", "education"}
	GitHubColumns   = []string{"Username", "Name", "Description", "Languages", "Latest Commit", "README"}
)

// Columnas de identidad por fuente.
const (
	LinkedInNameColumn       = "name"
	GitHubUsernameColumn     = "Username"
	GitHubNameColumn         = "Name"
	GitHubLatestCommitColumn = "Latest Commit"
)

// ColumnPolicy define que columnas se concatenan como texto crudo en cada flujo.
type ColumnPolicy struct {
	LinkedIn        []string `yaml:"linkedin"`
	GitHub          []string `yaml:"github"`
	CompareLinkedIn []string `yaml:"compare_linkedin"`
	CompareGitHub   []string `yaml:"compare_github"`
}

// DefaultColumnPolicy replica la seleccion de columnas del dashboard original.
func DefaultColumnPolicy() ColumnPolicy {
	return ColumnPolicy{
		LinkedIn:        []string{"name", "about", "posts", "experience", "education"},
		GitHub:          []string{"Description", "Languages", "Latest Commit", "README"},
		CompareLinkedIn: []string{"name", "about", "posts", "experience", "education"},
		CompareGitHub:   []string{GitHubLatestCommitColumn},
	}
}

// Analysis devuelve las columnas de analisis individual y batch para la fuente.
func (p ColumnPolicy) Analysis(source Source) []string {
	if source == SourceGitHub {
		return p.GitHub
	}
	return p.LinkedIn
}

// Comparison devuelve las columnas usadas en la comparacion entre plataformas.
func (p ColumnPolicy) Comparison(source Source) []string {
	if source == SourceGitHub {
		return p.CompareGitHub
	}
	return p.CompareLinkedIn
}

// WithDefaults completa las listas vacias con los valores por defecto.
func (p ColumnPolicy) WithDefaults() ColumnPolicy {
	def := DefaultColumnPolicy()
	if len(p.LinkedIn) == 0 {
		p.LinkedIn = def.LinkedIn
	}
	if len(p.GitHub) == 0 {
		p.GitHub = def.GitHub
	}
	if len(p.CompareLinkedIn) == 0 {
		p.CompareLinkedIn = def.CompareLinkedIn
	}
	if len(p.CompareGitHub) == 0 {
		p.CompareGitHub = def.CompareGitHub
	}
	return p
}
