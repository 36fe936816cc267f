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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gowcns/InputParameters"
	"github.com/notargets/gowcns/eos"
	"github.com/notargets/gowcns/flowmodel"
	"github.com/notargets/gowcns/instrument"
	"github.com/notargets/gowcns/reconstruct"
	"github.com/notargets/gowcns/sod_shock_tube"
	"github.com/notargets/gowcns/utils"
)

var exampleFile = `
########################################
Title: "Sod Shock Tube"
FlowModel: single-species   # or four-equation, five-equation
Species:
  - Gamma: 1.4
Scheme: wcns6-ld            # or wcns5-js, wcns5-jsm, first-order
ReferenceAverage: simple    # or roe
WaveSpeeds: davis           # or einfeldt
Cells: 100
Left:
  Density: [1]
  Pressure: 1
Right:
  Density: [0.125]
  Pressure: 0.1
########################################
`

// FluxCmd represents the flux command
var FluxCmd = &cobra.Command{
	Use:   "flux",
	Short: "Interface fluxes of a one dimensional Riemann problem patch",
	Long: `
Builds a patch on [0,1] holding the Left state for x < 0.5 and the Right state
elsewhere, runs one reconstruction pass and prints the fluxes around the
discontinuity`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParameters
		)
		if ip, err = readInput(viper.GetString("inputConditionsFile")); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		ip.Print()
		if err = RunFlux(ip, viper.GetInt("faces")); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(FluxCmd)
	FluxCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- FlowModel\n\t- Scheme\n\t- Left and Right states")
	FluxCmd.Flags().IntP("faces", "f", 3, "number of faces printed either side of the discontinuity")
	_ = viper.BindPFlag("inputConditionsFile", FluxCmd.Flags().Lookup("inputConditionsFile"))
	_ = viper.BindPFlag("faces", FluxCmd.Flags().Lookup("faces"))
}

func readInput(fileName string) (ip *InputParameters.InputParameters, err error) {
	var data []byte
	if len(fileName) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters.InputParameters{}
	err = ip.Parse(data)
	return
}

// RiemannPatch fills a padded field with vL left of x = 0.5 and vR elsewhere,
// constant across the transverse directions
func RiemannPatch(m flowmodel.FlowModel, cells int, vL, vR []float64) (Q *utils.Field, dx [3]float64, err error) {
	var (
		n     = [3]int{cells, 1, 1}
		shape = utils.NewShape(m.Dim(), n, reconstruct.GhostWidth)
		r     = shape.Range(true)
		qL    = make([]float64, len(vL))
		qR    = make([]float64, len(vR))
	)
	dx = [3]float64{1. / float64(cells), 1, 1}
	if err = m.PrimitiveToConserved(vL, qL); err != nil {
		return
	}
	if err = m.PrimitiveToConserved(vR, qR); err != nil {
		return
	}
	Q = utils.NewField(shape, len(vL))
	for k := 0; k < r.Len(); k++ {
		idx := r.Index(k)
		if (float64(idx[0])+0.5)*dx[0] < 0.5 {
			Q.Put(idx, qL)
		} else {
			Q.Put(idx, qR)
		}
	}
	return
}

func RunFlux(ip *InputParameters.InputParameters, width int) (err error) {
	var (
		m      flowmodel.FlowModel
		opts   reconstruct.Options
		rc     *reconstruct.Reconstructor
		res    *reconstruct.Result
		vL, vR []float64
		Q      *utils.Field
		dx     [3]float64
		timers = instrument.NewTimers()
		cells  = ip.Cells
	)
	if cells == 0 {
		cells = 100
	}
	if m, err = ip.FlowModel(); err != nil {
		return
	}
	if vL, err = ip.Left.Primitive(m); err != nil {
		return
	}
	if vR, err = ip.Right.Primitive(m); err != nil {
		return
	}
	if opts, err = ip.Options(logrus.StandardLogger()); err != nil {
		return
	}
	opts.Reporter = timers
	if rc, err = reconstruct.New(m, opts); err != nil {
		return
	}
	if Q, dx, err = RiemannPatch(m, cells, vL, vR); err != nil {
		return
	}
	if res, err = rc.ComputeFluxesAndSources(Q, dx); err != nil {
		return
	}
	var (
		F   = res.Fluxes[0]
		f   = make([]float64, F.NumComp)
		mid = cells / 2
		lo  = max(0, mid-width)
		hi  = min(cells, mid+width)
	)
	fmt.Printf("%s, %s, %s\n", m.Kind().Print(), rc.Interpolator().Name(), opts.Riemann.WaveSpeeds.Print())
	for i := lo; i <= hi; i++ {
		F.Get([3]int{i}, f)
		fmt.Printf("face %5d x = %8.5f F = %v\n", i, float64(i)*dx[0], f)
	}
	fmt.Printf("Max signal speed = %8.5f\n", res.MaxSignalSpeed)
	fmt.Printf("Stats = %+v\n", res.Stats)
	timers.Print()
	exactFlux(m, vL, vR)
	return
}

// exactFlux prints the exact flux at the diaphragm of single species ideal
// gas problems
func exactFlux(m flowmodel.FlowModel, vL, vR []float64) {
	var (
		l = m.Layout()
	)
	s, ok := m.(*flowmodel.Single)
	if !ok {
		return
	}
	sg, ok := s.EOS.(*eos.StiffenedGas)
	if !ok || sg.PInf != 0 {
		return
	}
	for d := 1; d < l.Velocity.Len; d++ {
		if vL[l.Velocity.Start+d] != 0 || vR[l.Velocity.Start+d] != 0 {
			return
		}
	}
	state := func(v []float64) sod_shock_tube.State {
		return sod_shock_tube.State{Rho: v[0], U: v[l.Velocity.Start], P: v[l.Energy]}
	}
	er, err := sod_shock_tube.NewExactRiemann(sg.Gamma, state(vL), state(vR))
	if err != nil {
		fmt.Printf("no exact solution: %s\n", err.Error())
		return
	}
	F := er.Flux(0)
	fmt.Printf("Exact: p* = %8.5f, u* = %8.5f, F = [%8.5f %8.5f %8.5f]\n",
		er.PStar, er.UStar, F[0], F[1], F[2])
}
