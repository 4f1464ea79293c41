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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blinklabs-io/rxedit"
	"github.com/blinklabs-io/rxedit/schema"
	"gopkg.in/yaml.v3"
)

type batchFile struct {
	Jobs []batchJob `yaml:"jobs"`
}

// batchJob is one save to edit. Relative paths are taken from the
// directory of the job file.
type batchJob struct {
	Input   string           `yaml:"input"`
	Output  string           `yaml:"output"`
	InPlace bool             `yaml:"in_place"`
	Money   *int64           `yaml:"money"`
	Levels  []batchLevelEdit `yaml:"levels"`
	Stats   []batchStatEdit  `yaml:"stats"`
}

type batchLevelEdit struct {
	Index int   `yaml:"index"`
	Level int64 `yaml:"level"`
}

type batchStatEdit struct {
	Index int    `yaml:"index"`
	Stat  string `yaml:"stat"`
	Value int64  `yaml:"value"`
}

type batchResult struct {
	job   batchJob
	edits int
	err   error
}

// parseBatchFile decodes and checks a job file. Unknown keys are errors.
func parseBatchFile(data []byte, baseDir string) ([]batchJob, error) {
	var file batchFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	if len(file.Jobs) == 0 {
		return nil, errors.New("job file has no jobs")
	}
	var errs []error
	outputs := make(map[string]int)
	for idx := range file.Jobs {
		job := &file.Jobs[idx]
		if err := job.check(); err != nil {
			errs = append(errs, fmt.Errorf("job %d: %w", idx, err))
			continue
		}
		if job.InPlace {
			job.Output = job.Input
		}
		job.Input = resolvePath(baseDir, job.Input)
		job.Output = resolvePath(baseDir, job.Output)
		// Jobs run concurrently, so two jobs may not write one file
		key := filepath.Clean(job.Output)
		if prev, ok := outputs[key]; ok {
			errs = append(errs, fmt.Errorf("job %d: output %s is also written by job %d", idx, key, prev))
			continue
		}
		outputs[key] = idx
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return file.Jobs, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func (j *batchJob) check() error {
	switch {
	case j.Input == "":
		return errors.New("input is required")
	case j.InPlace && j.Output != "":
		return errors.New("output and in_place are mutually exclusive")
	case !j.InPlace && j.Output == "":
		return errors.New("one of output or in_place is required")
	}
	_, err := j.edits()
	return err
}

func (j *batchJob) edits() ([]edit, error) {
	var ret []edit
	if j.Money != nil {
		ret = append(ret, edit{kind: editMoney, value: *j.Money})
	}
	for _, l := range j.Levels {
		if l.Index < 0 {
			return nil, fmt.Errorf("negative party index %d", l.Index)
		}
		ret = append(ret, edit{kind: editLevel, index: l.Index, value: l.Level})
	}
	for _, st := range j.Stats {
		if st.Index < 0 {
			return nil, fmt.Errorf("negative party index %d", st.Index)
		}
		stat, err := schema.ParseStat(st.Stat)
		if err != nil {
			return nil, err
		}
		ret = append(ret, edit{kind: editStat, index: st.Index, stat: stat, value: st.Value})
	}
	if len(ret) == 0 {
		return nil, errors.New("nothing to change")
	}
	return ret, nil
}

func runBatch(a *app, args []string) error {
	flagset := a.flagSet()
	if err := a.parse(flagset, args, 1); err != nil {
		return err
	}
	jobPath := flagset.Arg(0)
	data, err := os.ReadFile(jobPath)
	if err != nil {
		return err
	}
	jobs, err := parseBatchFile(data, filepath.Dir(jobPath))
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range a.runJobs(jobs) {
		if res.err != nil {
			failed++
			fmt.Fprintf(a.stdout, "FAIL %s: %s\n", res.job.Input, res.err)
			continue
		}
		fmt.Fprintf(a.stdout, "ok   %s -> %s (%d edits)\n", res.job.Input, res.job.Output, res.edits)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
	}
	return nil
}

// runJobs runs jobs on a bounded pool of workers, each job in its own
// managed session. Results are in job order.
func (a *app) runJobs(jobs []batchJob) []batchResult {
	mgr := rxedit.NewSessionManager(
		rxedit.SessionManagerConfig{
			Logger:         a.logger,
			IdleTimeout:    a.cfg.Sessions.IdleTimeout,
			MaxSessions:    a.cfg.Sessions.MaxSessions,
			SessionOptions: a.decoderOptions(),
		},
	)
	defer mgr.Stop()
	workers := a.cfg.Sessions.Workers
	if limit := a.cfg.Sessions.MaxSessions; limit > 0 && workers > limit {
		workers = limit
	}
	workers = max(workers, 1)
	results := make([]batchResult, len(jobs))
	jobChan := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				edits, err := runJob(mgr, jobs[idx])
				results[idx] = batchResult{job: jobs[idx], edits: edits, err: err}
			}
		}()
	}
	for idx := range jobs {
		jobChan <- idx
	}
	close(jobChan)
	wg.Wait()
	return results
}

func runJob(mgr *rxedit.SessionManager, job batchJob) (int, error) {
	edits, err := job.edits()
	if err != nil {
		return 0, err
	}
	id, s, err := mgr.NewSession()
	if err != nil {
		return 0, err
	}
	defer mgr.RemoveSession(id)
	if err := loadFile(s, job.Input); err != nil {
		return 0, err
	}
	if err := applyEdits(s, edits); err != nil {
		return 0, err
	}
	data, err := s.Export()
	if err != nil {
		return 0, err
	}
	if err := writeFile(job.Output, data); err != nil {
		return 0, err
	}
	return len(edits), nil
}
