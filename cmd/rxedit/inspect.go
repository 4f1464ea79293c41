// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/blinklabs-io/rxedit/cbor"
	"github.com/blinklabs-io/rxedit/schema"
)

func runInspect(a *app, args []string) error {
	flagset := a.flagSet()
	var format string
	flagset.StringVar(&format, "format", "text", "output format: text, json or cbor")
	if err := a.parse(flagset, args, 1); err != nil {
		return err
	}
	s, err := a.openSession(flagset.Arg(0))
	if err != nil {
		return err
	}
	proj, err := s.Projection()
	if err != nil {
		return err
	}
	return writeProjection(a.stdout, proj, format)
}

func writeProjection(w io.Writer, proj *schema.Projection, format string) error {
	switch format {
	case "text":
		writeProjectionText(w, proj)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(proj)
	case "cbor":
		data, err := cbor.Encode(proj)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeProjectionText(w io.Writer, proj *schema.Projection) {
	badges := 0
	for _, b := range proj.Badges {
		if b {
			badges++
		}
	}
	fmt.Fprintf(w, "Trainer: %s (ID %d)\n", proj.Name, proj.ID)
	fmt.Fprintf(w, "Money:   %d\n", proj.Money)
	fmt.Fprintf(w, "Badges:  %d/%d\n", badges, len(proj.Badges))
	fmt.Fprintf(
		w,
		"Pokedex: %t (seen %d, owned %d)\n",
		proj.Pokedex,
		proj.Seen,
		proj.Owned,
	)
	fmt.Fprintf(w, "Party:   %d\n", len(proj.Party))
	for idx, mon := range proj.Party {
		fmt.Fprintf(
			w,
			"  [%d] %s species=%v level=%d\n",
			idx,
			mon.Name,
			mon.Species,
			mon.Level,
		)
		st := mon.Stats
		fmt.Fprintf(
			w,
			"      hp=%d/%d atk=%d def=%d spatk=%d spdef=%d spd=%d\n",
			st.HP,
			st.TotalHP,
			st.Attack,
			st.Defense,
			st.SpecialAttack,
			st.SpecialDefense,
			st.Speed,
		)
		moves := make([]string, 0, len(mon.Moves))
		for _, m := range mon.Moves {
			moves = append(moves, fmt.Sprintf("%v (%d pp)", m.ID, m.PP))
		}
		if len(moves) > 0 {
			fmt.Fprintf(w, "      moves: %s\n", strings.Join(moves, ", "))
		}
		if mon.OT != "" {
			fmt.Fprintf(w, "      ot: %s (ID %d)\n", mon.OT, mon.TrainerID)
		}
	}
}
