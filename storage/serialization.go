// Copyright 2025 Poiesic Systems
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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/vocab"
)

// recordVersion prefixes every encoded record so older layouts can be
// detected after a format change.
const recordVersion = 1

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	return marshal(func(w *writer) {
		w.id(id)
	})
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	r := reader{bs: data}
	id := r.id()
	return id, r.finish()
}

// MarshalInvestor serializes an Investor, including its feature bundle.
func MarshalInvestor(inv *core.Investor) []byte {
	return marshal(func(w *writer) {
		w.num(recordVersion)
		w.id(inv.Id)
		w.str(inv.Name)
		w.str(inv.Location)
		w.str(inv.TicketSize)
		w.strs(inv.Industries)
		w.strs(inv.Stages)
		w.num(inv.NumInvestments)
		w.num(inv.RecentActivityYear)
		w.str(inv.Bio)
		w.str(inv.Role)
		w.str(inv.SuccessRate)
		w.strs(inv.PastInvestmentTypes)
		w.bundle(&inv.Features)
	})
}

// UnmarshalInvestor deserializes an Investor.
func UnmarshalInvestor(data []byte) (*core.Investor, error) {
	r := reader{bs: data}
	r.version()
	inv := &core.Investor{
		Id:                  r.id(),
		Name:                r.str(),
		Location:            r.str(),
		TicketSize:          r.str(),
		Industries:          r.strs(),
		Stages:              r.strs(),
		NumInvestments:      r.num(),
		RecentActivityYear:  r.num(),
		Bio:                 r.str(),
		Role:                r.str(),
		SuccessRate:         r.str(),
		PastInvestmentTypes: r.strs(),
	}
	inv.Features = r.bundle()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return inv, nil
}

// MarshalStartup serializes a Startup, including its feature bundle.
func MarshalStartup(s *core.Startup) []byte {
	return marshal(func(w *writer) {
		w.num(recordVersion)
		w.str(string(s.Id))
		w.str(s.Name)
		w.str(s.Industry)
		w.str(s.Location)
		w.str(s.FundingStage)
		w.str(s.BusinessModel)
		w.str(s.RevenueStage)
		w.str(s.CustomerSegment)
		w.str(s.TeamSize)
		w.str(s.FoundedYear)
		w.id(s.InvestorId)
		w.str(s.InvestorName)
		w.bundle(&s.Features)
	})
}

// UnmarshalStartup deserializes a Startup.
func UnmarshalStartup(data []byte) (*core.Startup, error) {
	r := reader{bs: data}
	r.version()
	s := &core.Startup{
		Id:              core.StartupID(r.str()),
		Name:            r.str(),
		Industry:        r.str(),
		Location:        r.str(),
		FundingStage:    r.str(),
		BusinessModel:   r.str(),
		RevenueStage:    r.str(),
		CustomerSegment: r.str(),
		TeamSize:        r.str(),
		FoundedYear:     r.str(),
		InvestorId:      r.id(),
		InvestorName:    r.str(),
	}
	s.Features = r.bundle()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return s, nil
}

// MarshalInteraction serializes an Interaction.
func MarshalInteraction(in *core.Interaction) []byte {
	return marshal(func(w *writer) {
		w.num(recordVersion)
		w.str(string(in.StartupId))
		w.num(len(in.Investors))
		for _, id := range in.Investors {
			w.id(id)
		}
	})
}

// UnmarshalInteraction deserializes an Interaction.
func UnmarshalInteraction(data []byte) (*core.Interaction, error) {
	r := reader{bs: data}
	r.version()
	in := &core.Interaction{StartupId: core.StartupID(r.str())}
	if n := r.length(); n > 0 {
		in.Investors = make([]core.ID, n)
		for i := range in.Investors {
			in.Investors[i] = r.id()
		}
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return in, nil
}

// MarshalLabels serializes vocabulary labels.
func MarshalLabels(l *vocab.Labels) []byte {
	return marshal(func(w *writer) {
		w.num(recordVersion)
		w.strs(l.Industries)
		w.strs(l.Stages)
		w.strs(l.Locations)
		w.strs(l.BusinessModels)
		w.strs(l.RevenueStages)
		w.strs(l.CustomerSegments)
	})
}

// UnmarshalLabels deserializes vocabulary labels.
func UnmarshalLabels(data []byte) (*vocab.Labels, error) {
	r := reader{bs: data}
	r.version()
	l := &vocab.Labels{
		Industries:       r.strs(),
		Stages:           r.strs(),
		Locations:        r.strs(),
		BusinessModels:   r.strs(),
		RevenueStages:    r.strs(),
		CustomerSegments: r.strs(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return l, nil
}

// MarshalMeta serializes snapshot metadata.
func MarshalMeta(m *Meta) []byte {
	return marshal(func(w *writer) {
		w.num(recordVersion)
		w.str(m.Fingerprint)
		w.str(m.LocationMode)
		w.num(m.Investors)
		w.num(m.Startups)
		w.num(m.Interactions)
		w.num(int(m.SavedAt.UnixMicro()))
	})
}

// UnmarshalMeta deserializes snapshot metadata.
func UnmarshalMeta(data []byte) (*Meta, error) {
	r := reader{bs: data}
	r.version()
	m := &Meta{
		Fingerprint:  r.str(),
		LocationMode: r.str(),
		Investors:    r.num(),
		Startups:     r.num(),
		Interactions: r.num(),
	}
	m.SavedAt = time.UnixMicro(int64(r.num())).UTC()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return m, nil
}

// marshal runs encode twice: once to size the buffer and once to fill it.
func marshal(encode func(w *writer)) []byte {
	var sizer writer
	encode(&sizer)
	w := writer{bs: make([]byte, sizer.n)}
	encode(&w)
	return w.bs
}

// writer either accumulates sizes (bs == nil) or writes into bs.
type writer struct {
	bs []byte
	n  int
}

func (w *writer) num(v int) {
	if w.bs == nil {
		w.n += varint.Int.Size(v)
		return
	}
	w.n += varint.Int.Marshal(v, w.bs[w.n:])
}

func (w *writer) id(v core.ID) {
	if w.bs == nil {
		w.n += varint.Uint64.Size(uint64(v))
		return
	}
	w.n += varint.Uint64.Marshal(uint64(v), w.bs[w.n:])
}

func (w *writer) float(v float64) {
	if w.bs == nil {
		w.n += varint.Float64.Size(v)
		return
	}
	w.n += varint.Float64.Marshal(v, w.bs[w.n:])
}

func (w *writer) str(v string) {
	if w.bs == nil {
		w.n += ord.String.Size(v)
		return
	}
	w.n += ord.String.Marshal(v, w.bs[w.n:])
}

func (w *writer) strs(v []string) {
	w.num(len(v))
	for _, s := range v {
		w.str(s)
	}
}

func (w *writer) bundle(b *core.FeatureBundle) {
	for _, d := range core.Dimensions {
		w.num(len(b[d]))
		for _, x := range b[d] {
			w.float(x)
		}
	}
}

// reader decodes sequentially and remembers the first error.
type reader struct {
	bs  []byte
	n   int
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
}

func (r *reader) num() int {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(r.bs[r.n:])
	r.n += n
	if err != nil {
		r.fail(err)
	}
	return v
}

func (r *reader) id() core.ID {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(r.bs[r.n:])
	r.n += n
	if err != nil {
		r.fail(err)
	}
	return core.ID(v)
}

func (r *reader) float() float64 {
	if r.err != nil {
		return 0
	}
	v, n, err := varint.Float64.Unmarshal(r.bs[r.n:])
	r.n += n
	if err != nil {
		r.fail(err)
	}
	return v
}

func (r *reader) str() string {
	if r.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(r.bs[r.n:])
	r.n += n
	if err != nil {
		r.fail(err)
	}
	return v
}

// length reads a collection length and bounds it by the remaining input,
// since every element takes at least one byte.
func (r *reader) length() int {
	n := r.num()
	if r.err != nil {
		return 0
	}
	if n < 0 || n > len(r.bs)-r.n {
		r.fail(fmt.Errorf("%w: length %d", ErrTruncatedData, n))
		return 0
	}
	return n
}

func (r *reader) version() {
	if v := r.num(); r.err == nil && v != recordVersion {
		r.fail(fmt.Errorf("unsupported record version %d", v))
	}
}

func (r *reader) strs() []string {
	n := r.length()
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = r.str()
	}
	return out
}

func (r *reader) bundle() core.FeatureBundle {
	var b core.FeatureBundle
	for _, d := range core.Dimensions {
		n := r.length()
		if n == 0 {
			continue
		}
		vec := make(core.Vector, n)
		for i := range vec {
			vec[i] = r.float()
		}
		b[d] = vec
	}
	return b
}

// finish reports the first decoding error. Unconsumed input is an error.
func (r *reader) finish() error {
	if r.err != nil {
		return r.err
	}
	if r.n != len(r.bs) {
		return fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(r.bs)-r.n)
	}
	return nil
}
