package main

import (
	"errors"
	"os"

	"sypiv.io/sypiv-hpc/core"
	logger "sypiv.io/sypiv-hpc/logger"
	"sypiv.io/sypiv-hpc/slurm"
)

// Variables copied into the job script when set at render time
var forwardedEnv = []string{
	core.DataDirEnv,
	core.GridFileEnv,
	core.FlowFileEnv,
	core.PythonEnv,
}

type ScriptOptions struct {
	Profile   string `short:"f" long:"profile" description:"YAML profile overriding job resources"`
	Jobname   string `short:"J" long:"job-name" description:"Specify a name for the job allocation"`
	Partition string `short:"p" long:"partition" description:"Request a specific partition for the resource allocation"`
	Account   string `short:"A" long:"account" description:"Charge resources used by this job to specified account"`
	Time      string `short:"t" long:"time" description:"time limit hours:minutes:seconds"`
	Launcher  string `long:"launcher" description:"path of sypiv-hpc on the compute nodes (default: this executable)"`
}

// resources merges defaults, the profile, the command line and the
// forwarded environment, in increasing precedence.
func (o *ScriptOptions) resources() (slurm.Resources, error) {
	launcher := o.Launcher
	if len(launcher) == 0 {
		if exe, err := os.Executable(); err == nil {
			launcher = exe
		} else {
			launcher = parser.Name
		}
	}
	res := slurm.DefaultResources(launcher)
	if len(o.Profile) > 0 {
		var err error
		if res, err = slurm.LoadProfile(o.Profile, res); err != nil {
			return res, err
		}
	}
	if len(o.Jobname) > 0 {
		res.JobName = o.Jobname
	}
	if len(o.Partition) > 0 {
		res.Partition = o.Partition
	}
	if len(o.Account) > 0 {
		res.Account = o.Account
	}
	if len(o.Time) > 0 {
		res.Time = o.Time
	}
	if len(o.Launcher) > 0 {
		res.Launcher = o.Launcher
	}
	for _, key := range forwardedEnv {
		if val := os.Getenv(key); len(val) > 0 {
			if res.Env == nil {
				res.Env = map[string]string{}
			}
			res.Env[key] = val
		}
	}
	return res, nil
}

type ScriptCommand struct {
	Help    bool          `short:"h" long:"help" description:"Show this help message"`
	Options ScriptOptions `group:"Job Script Options"`
	Output  string        `short:"o" long:"output" description:"write the script to this file instead of stdout"`
}

var scriptCommand ScriptCommand

func (x *ScriptCommand) Execute(args []string) error {
	if x.Help {
		return core.CreateHelpErr()
	}
	res, err := x.Options.resources()
	if err != nil {
		return errors.New("script: " + err.Error())
	}
	logger.DebugObj("resources", res)
	if len(x.Output) == 0 {
		return slurm.RenderJobScript(stdout, res)
	}
	return writeJobScript(x.Output, res)
}

func writeJobScript(path string, res slurm.Resources) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.New("script: " + err.Error())
	}
	if err := slurm.RenderJobScript(f, res); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func init() {
	parser.AddCommand("script",
		"Render Slurm job script",
		"Write the batch script that requests the allocation, loads the environment module and execs run",
		&scriptCommand)
}
