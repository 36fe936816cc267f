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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gowcns/weno"
)

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Order of accuracy of every interpolation scheme on smooth data",
	Run: func(cmd *cobra.Command, args []string) {
		RunConvergence(viper.GetInt("coarse"), viper.GetInt("levels"))
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().Int("coarse", 20, "points on the coarsest grid")
	ConvergenceCmd.Flags().Int("levels", 5, "number of grids, each refined by two")
	_ = viper.BindPFlag("coarse", ConvergenceCmd.Flags().Lookup("coarse"))
	_ = viper.BindPFlag("levels", ConvergenceCmd.Flags().Lookup("levels"))
}

func RunConvergence(coarse, levels int) {
	var (
		f      = func(x float64) float64 { return math.Sin(2 * math.Pi * x) }
		numPTS []int
	)
	for i, n := 0, coarse; i < levels; i, n = i+1, 2*n {
		numPTS = append(numPTS, n)
	}
	for _, s := range []weno.Scheme{weno.FirstOrder, weno.WCNS5JS, weno.WCNS5JSM, weno.WCNS6LD} {
		ip, err := weno.New(s, weno.DefaultParameters(s))
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			continue
		}
		weno.Study(ip, f, numPTS).Print()
	}
}
