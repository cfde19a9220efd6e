package slurm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults match the allocation the PIV batch job has always asked for.
const (
	DefaultJobName = "sypiv"
	DefaultNodes   = 1
	DefaultTasks   = 32
	DefaultTime    = "02:00:00"
	DefaultModule  = "python"
	DefaultOutput  = "sypiv-%j.out"
	DefaultShell   = "/bin/bash"
)

var validate = validator.New()

// Resources is everything a rendered job script requests or sets up. A
// YAML profile may override any field. Fields written unquoted into the
// script must stay on one line.
type Resources struct {
	JobName   string            `yaml:"job_name" validate:"required,excludesall=\n\r"`
	Nodes     int               `yaml:"nodes" validate:"gt=0"`
	Tasks     int               `yaml:"ntasks" validate:"gt=0"`
	Time      string            `yaml:"time" validate:"required,excludesall=\n\r"`
	Partition string            `yaml:"partition,omitempty" validate:"excludesall=\n\r"`
	Account   string            `yaml:"account,omitempty" validate:"excludesall=\n\r"`
	Output    string            `yaml:"output,omitempty" validate:"excludesall=\n\r"`
	Module    string            `yaml:"module,omitempty" validate:"excludesall=\n\r"`
	Launcher  string            `yaml:"launcher" validate:"required"`
	Env       map[string]string `yaml:"env,omitempty"`
}

func DefaultResources(launcher string) Resources {
	return Resources{
		JobName:  DefaultJobName,
		Nodes:    DefaultNodes,
		Tasks:    DefaultTasks,
		Time:     DefaultTime,
		Output:   DefaultOutput,
		Module:   DefaultModule,
		Launcher: launcher,
	}
}

func (r Resources) Validate() error {
	return validate.Struct(r)
}

// LoadProfile overlays the YAML profile at path onto base.
func LoadProfile(path string, base Resources) (Resources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("profile: %w", err)
	}
	res := base
	if base.Env != nil {
		res.Env = make(map[string]string, len(base.Env))
		for k, v := range base.Env {
			res.Env[k] = v
		}
	}
	if err := yaml.Unmarshal(data, &res); err != nil {
		return base, fmt.Errorf("profile: %s: %w", path, err)
	}
	return res, nil
}

const jobScriptTemplate = `#!{{.Shell}}
#SBATCH --job-name={{.JobName}}
#SBATCH --nodes={{.Nodes}}
#SBATCH --ntasks={{.Tasks}}
#SBATCH --time={{.Time}}
{{- if .Partition}}
#SBATCH --partition={{.Partition}}
{{- end}}
{{- if .Account}}
#SBATCH --account={{.Account}}
{{- end}}
{{- if .Output}}
#SBATCH --output={{.Output}}
{{- end}}
{{if .Module}}
module load {{.Module}}
{{- end}}
{{- range $key, $value := .Env}}
export {{$key}}={{quote $value}}
{{- end}}

exec {{quote .Launcher}} run
`

var jobScript = template.Must(template.New("jobscript").
	Funcs(template.FuncMap{"quote": shellQuote}).
	Parse(jobScriptTemplate))

// RenderJobScript writes a bash batch script for r.
func RenderJobScript(w io.Writer, r Resources) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("script: invalid resources: %w", err)
	}
	for key := range r.Env {
		if !validEnvName(key) {
			return errors.New("script: invalid environment variable name " + key)
		}
	}
	data := struct {
		Resources
		Shell string
	}{r, DefaultShell}
	return jobScript.Execute(w, data)
}

// JobScript is a batch script split into its interpreter, directive
// arguments and remaining body.
type JobScript struct {
	Shell  string   `json:"shell"`
	Args   []string `json:"args"`
	Script []byte   `json:"script"`
}

// ParseJobScript reads #<directive> lines the way the scheduler does:
// only those before the first command count.
func ParseJobScript(directive string, r io.Reader) (JobScript, error) {
	prefix := "#" + directive
	scanner := bufio.NewScanner(r)
	js := JobScript{Shell: "/bin/sh"}

	first := true
	parsed := false
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "#!") {
				js.Shell = strings.TrimSpace(line[2:])
				continue
			}
		}
		trimmed := strings.TrimSpace(line)
		if !parsed {
			if strings.HasPrefix(trimmed, prefix) {
				js.Args = append(js.Args, strings.Fields(trimmed[len(prefix):])...)
				continue
			}
			if len(trimmed) > 0 && !strings.HasPrefix(trimmed, "#") {
				parsed = true
			}
		}
		js.Script = append(js.Script, line...)
		js.Script = append(js.Script, '\n')
	}
	if err := scanner.Err(); err != nil {
		return JobScript{}, fmt.Errorf("job script: %w", err)
	}
	return js, nil
}

// Directives turns directive arguments into a map keyed by option name
// without dashes. Both --key=value and "-k value" / "--key value" forms are
// paired; an option with no value maps to "true".
func Directives(args []string) map[string]string {
	directives := make(map[string]string, len(args))
	for i := 0; i < len(args); i++ {
		arg := strings.TrimLeft(args[i], "-")
		if key, value, ok := strings.Cut(arg, "="); ok {
			directives[key] = value
		} else if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			directives[arg] = args[i+1]
			i++
		} else {
			directives[arg] = "true"
		}
	}
	return directives
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func validEnvName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
