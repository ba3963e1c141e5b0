package buildinfo

const Graffiti = "  ___  _____ ___ ___ ___ \n / _ \\|_   _| _ \\ __| __|\n| (_) | | | |   / _|| _| \n \\___\\_\\|_| |_|_\\___|___|\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "QTREE"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
