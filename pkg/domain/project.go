package domain

// DefaultProject is the project selected when nothing else is requested
const DefaultProject = "en"

// Projects lists the supported wikipedia language editions, in tab order
var Projects = []string{
	"en", "fr", "es", "de", "ru", "ja", "nl", "it", "sv",
	"pl", "vi", "pt", "ar", "zh", "uk", "ro", "bg", "th",
}

var projectSet = func() map[string]struct{} {
	res := make(map[string]struct{}, len(Projects))
	for _, p := range Projects {
		res[p] = struct{}{}
	}
	return res
}()

// IsProject checks if project is one of the supported wikipedia editions
func IsProject(project string) bool {
	_, ok := projectSet[project]
	return ok
}
