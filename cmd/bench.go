/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gowcns/eos"
	"github.com/notargets/gowcns/flowmodel"
	"github.com/notargets/gowcns/instrument"
	"github.com/notargets/gowcns/reconstruct"
	"github.com/notargets/gowcns/utils"
	"github.com/notargets/gowcns/weno"
)

type Bench struct {
	Dim, Cells, Passes, ParallelDegree int
	Scheme                             string
	Profile                            string
	Perf                               bool
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Repeated reconstruction passes on a smooth multi-dimensional patch",
	Run: func(cmd *cobra.Command, args []string) {
		b := &Bench{
			Dim:            viper.GetInt("dim"),
			Cells:          viper.GetInt("cells"),
			Passes:         viper.GetInt("passes"),
			ParallelDegree: viper.GetInt("parallelDegree"),
			Scheme:         viper.GetString("scheme"),
			Profile:        viper.GetString("profile"),
			Perf:           viper.GetBool("perf"),
		}
		if err := RunBench(b); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("dim", "d", 2, "dimension of the patch")
	BenchCmd.Flags().IntP("cells", "n", 64, "cells per direction")
	BenchCmd.Flags().IntP("passes", "p", 10, "number of reconstruction passes")
	BenchCmd.Flags().Int("parallelDegree", 0, "number of workers, zero for all CPUs")
	BenchCmd.Flags().String("scheme", "wcns6-ld", "interpolation scheme")
	BenchCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	BenchCmd.Flags().Bool("perf", false, "count retired CPU instructions (linux)")
	for _, name := range []string{"dim", "cells", "passes", "parallelDegree", "scheme", "profile", "perf"} {
		_ = viper.BindPFlag(name, BenchCmd.Flags().Lookup(name))
	}
}

func RunBench(b *Bench) (err error) {
	if b.Dim < 1 || b.Dim > 3 || b.Cells < 1 {
		return fmt.Errorf("invalid patch: %d cells in %d dimensions", b.Cells, b.Dim)
	}
	var (
		m      = flowmodel.NewSingleSpecies(b.Dim, eos.NewIdealGas(1.4))
		timers = instrument.NewTimers()
		s      weno.Scheme
		rc     *reconstruct.Reconstructor
		ip     weno.Interpolator
		Q      *utils.Field
	)
	switch b.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		return fmt.Errorf("unknown profile %s", b.Profile)
	}
	if s, err = weno.NewScheme(b.Scheme); err != nil {
		return
	}
	if ip, err = weno.New(s, weno.DefaultParameters(s)); err != nil {
		return
	}
	opts := reconstruct.DefaultOptions()
	opts.Interpolator, opts.Reporter, opts.ParallelDegree = ip, timers, b.ParallelDegree
	opts.Log = logrus.StandardLogger()
	if rc, err = reconstruct.New(m, opts); err != nil {
		return
	}
	if Q, err = smoothPatch(m, b.Cells); err != nil {
		return
	}
	var (
		dx    = [3]float64{1. / float64(b.Cells), 1. / float64(b.Cells), 1. / float64(b.Cells)}
		stats reconstruct.Stats
	)
	run := func() (err error) {
		for pass := 0; pass < b.Passes; pass++ {
			var res *reconstruct.Result
			if res, err = rc.ComputeFluxesAndSources(Q, dx); err != nil {
				return
			}
			stats.Add(res.Stats)
		}
		return
	}
	t0 := time.Now()
	if b.Perf {
		var count uint64
		if count, err = instrument.CountInstructions(run); err != nil {
			return
		}
		fmt.Printf("Instructions = %d, per interface = %8.1f\n", count, float64(count)/float64(stats.Interfaces))
	} else if err = run(); err != nil {
		return
	}
	elapsed := time.Since(t0)
	fmt.Printf("%dD, %d cells per direction, %d passes, %s\n", b.Dim, b.Cells, b.Passes, ip.Name())
	fmt.Printf("Elapsed = %v, per interface = %v\n", elapsed, elapsed/time.Duration(max(1, stats.Interfaces)))
	fmt.Printf("Stats = %+v\n", stats)
	timers.Print()
	fmt.Println(utils.GetMemUsage())
	return
}

// smoothPatch is a periodic entropy and acoustic perturbation of a uniform state
func smoothPatch(m flowmodel.FlowModel, cells int) (Q *utils.Field, err error) {
	var (
		shape = utils.NewShape(m.Dim(), [3]int{cells, cells, cells}, reconstruct.GhostWidth)
		r     = shape.Range(true)
		l     = m.Layout()
		v     = make([]float64, l.NumEqn)
		q     = make([]float64, l.NumEqn)
		h     = 2 * math.Pi / float64(cells)
	)
	Q = utils.NewField(shape, l.NumEqn)
	for k := 0; k < r.Len(); k++ {
		var (
			idx   = r.Index(k)
			phase float64
		)
		for d := 0; d < m.Dim(); d++ {
			phase += h * float64(idx[d])
		}
		v[0] = 1 + 0.2*math.Sin(phase)
		for d := 0; d < l.Velocity.Len; d++ {
			v[l.Velocity.Start+d] = 0.1 * math.Cos(phase+float64(d))
		}
		v[l.Energy] = 1 + 0.1*math.Cos(phase)
		if err = m.PrimitiveToConserved(v, q); err != nil {
			return
		}
		Q.Put(idx, q)
	}
	return
}
