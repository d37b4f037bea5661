package spectrum

// Feature declares a suite named "Feature: name".
func (s *DSL) Feature(name string, fn func()) { s.Describe("Feature: "+name, fn) }

// Scenario declares a composite suite named "Scenario: name". Its steps are
// declared with Given, When, Then and And.
func (s *DSL) Scenario(name string, fn func()) { s.Composite("Scenario: "+name, fn) }

// Given declares a step named "Given behavior".
func (s *DSL) Given(behavior string, fn func(*T)) { s.It("Given "+behavior, fn) }

// When declares a step named "When behavior".
func (s *DSL) When(behavior string, fn func(*T)) { s.It("When "+behavior, fn) }

// Then declares a step named "Then behavior".
func (s *DSL) Then(behavior string, fn func(*T)) { s.It("Then "+behavior, fn) }

// And declares a step named "And behavior".
func (s *DSL) And(behavior string, fn func(*T)) { s.It("And "+behavior, fn) }
