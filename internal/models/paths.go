package models

// Project describes the directories of the host application
type Project struct {
	RootDir   string // Absolute project root
	BuildDir  string // Absolute build output directory (e.g. <root>/.nuxt)
	ServerDir string // Absolute server directory (e.g. <root>/server)
}

// Paths holds the computed locations of the generated globals file
type Paths struct {
	ModulePath          string // Generator path named in the banner comment
	OutputDirName       string // Base name of the build output directory
	FullPath            string // Default on-disk location inside the build directory
	DisplayPath         string // Path shown to the user after generation
	Filename            string // e.g. ".eslint.globals.mjs"
	ExplicitDestination string // <root>/<outputDir>/<filename> when outputDir is configured
}

// Destination returns the path the artifact is written to
func (p Paths) Destination() string {
	if p.ExplicitDestination != "" {
		return p.ExplicitDestination
	}
	return p.FullPath
}
