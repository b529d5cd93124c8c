package domain

// EntityMeta carries the fields shared by every collection entity.
// Timestamps are ISO-8601 strings because that is the persisted document
// format; they are never computed with, only stamped and compared for tests.
type EntityMeta struct {
	ID        string  `json:"id"`
	Visible   bool    `json:"visible"`
	Order     float64 `json:"order"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// Meta returns the embedded meta so generic code can reach it through the
// Entity interface.
func (m *EntityMeta) Meta() *EntityMeta { return m }

// Entity is implemented by every collection record via the embedded EntityMeta.
type Entity interface {
	Meta() *EntityMeta
}

type Skill struct {
	EntityMeta
	Category string `json:"category"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Color    string `json:"color,omitempty"`
	Level    string `json:"level,omitempty"`
}

// GithubLink is one repository reference on a project. Projects written
// before multi-repo support carry only the legacy githubUrl string, which is
// synthesized into a single link with label "GitHub".
type GithubLink struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	IsPrivate bool   `json:"isPrivate,omitempty"`
}

type Project struct {
	EntityMeta
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	LongDescription string       `json:"longDescription,omitempty"`
	Technologies    []string     `json:"technologies"`
	Images          []string     `json:"images"`
	Image           string       `json:"image"` // legacy, first of Images
	GithubLinks     []GithubLink `json:"githubLinks"`
	GithubURL       string       `json:"githubUrl"` // legacy, first link's URL
	LiveURL         string       `json:"liveUrl,omitempty"`
	SwaggerURL      string       `json:"swaggerUrl,omitempty"`
	TelegramBotURL  string       `json:"telegramBotUrl,omitempty"`
	Featured        bool         `json:"featured"`
	Categories      []string     `json:"categories"`
	Category        string       `json:"category"` // legacy, first of Categories
	Status          string       `json:"status,omitempty"`
}

type Experience struct {
	EntityMeta
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate,omitempty"`
	Current          bool     `json:"current"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	EntityMeta
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type Certification struct {
	EntityMeta
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

// PersonalInfo is the singleton record; it has no id, visibility, or order.
type PersonalInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Github    string `json:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
	Summary   string `json:"summary"`
	UpdatedAt string `json:"updatedAt"`
}

// PortfolioDocument is the single root aggregate. It is always read and
// written as one unit; there are no partial writes.
type PortfolioDocument struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
}

// Collection names as they appear in API paths and in the document itself.
const (
	CollectionSkills         = "skills"
	CollectionProjects       = "projects"
	CollectionExperiences    = "experiences"
	CollectionEducation      = "education"
	CollectionCertifications = "certifications"
)
