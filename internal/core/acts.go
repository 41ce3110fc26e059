package core

// FallbackActs is the coverage list shown when the acts endpoint cannot be
// reached.
var FallbackActs = []Act{
	{ShortName: "RTA", Title: "Residential Tenancies Act 1986", Year: 1986, Topics: []string{"tenancy", "bonds", "housing"}},
	{ShortName: "ERA", Title: "Employment Relations Act 2000", Year: 2000, Topics: []string{"employment", "dismissal", "leave"}},
	{ShortName: "CA", Title: "Companies Act 1993", Year: 1993, Topics: []string{"directors", "shareholders", "incorporation"}},
	{ShortName: "CGA", Title: "Consumer Guarantees Act 1993", Year: 1993, Topics: []string{"refunds", "repairs", "guarantees"}},
	{ShortName: "PLA", Title: "Property Law Act 2007", Year: 2007, Topics: []string{"property", "mortgages", "leases"}},
	{ShortName: "FTA", Title: "Fair Trading Act 1986", Year: 1986, Topics: []string{"consumer protection", "misleading conduct"}},
	{ShortName: "PA", Title: "Privacy Act 2020", Year: 2020, Topics: []string{"personal information", "data breaches"}},
	{ShortName: "BA", Title: "Building Act 2004", Year: 2004, Topics: []string{"consents", "code compliance"}},
	{ShortName: "CCLA", Title: "Contract and Commercial Law Act 2017", Year: 2017, Topics: []string{"contracts", "sale of goods"}},
	{ShortName: "RMA", Title: "Resource Management Act 1991", Year: 1991, Topics: []string{"environment", "resource consents"}},
	{ShortName: "CA1961", Title: "Crimes Act 1961", Year: 1961, Topics: []string{"criminal offences", "sentencing"}},
	{ShortName: "HSWA", Title: "Health and Safety at Work Act 2015", Year: 2015, Topics: []string{"workplace safety", "PCBU duties"}},
	{ShortName: "HRA", Title: "Human Rights Act 1993", Year: 1993, Topics: []string{"discrimination", "equality"}},
	{ShortName: "ITA", Title: "Income Tax Act 2007", Year: 2007, Topics: []string{"tax", "deductions", "income"}},
	{ShortName: "LTA", Title: "Land Transport Act 1998", Year: 1998, Topics: []string{"driving", "licences", "traffic"}},
	{ShortName: "IA", Title: "Immigration Act 2009", Year: 2009, Topics: []string{"visas", "residence", "deportation"}},
	{ShortName: "TA", Title: "Trusts Act 2019", Year: 2019, Topics: []string{"trusts", "trustees", "beneficiaries"}},
	{ShortName: "INSA", Title: "Insolvency Act 2006", Year: 2006, Topics: []string{"bankruptcy", "liquidation"}},
	{ShortName: "CRA", Title: "Copyright Act 1994", Year: 1994, Topics: []string{"copyright", "intellectual property"}},
	{ShortName: "CCCFA", Title: "Credit Contracts and Consumer Finance Act 2003", Year: 2003, Topics: []string{"loans", "credit", "interest"}},
	{ShortName: "OIA", Title: "Official Information Act 1982", Year: 1982, Topics: []string{"government", "requests", "disclosure"}},
	{ShortName: "FVA", Title: "Family Violence Act 2018", Year: 2018, Topics: []string{"protection orders", "domestic violence"}},
	{ShortName: "ACA", Title: "Accident Compensation Act 2001", Year: 2001, Topics: []string{"ACC", "injury", "compensation"}},
	{ShortName: "FMCA", Title: "Financial Markets Conduct Act 2013", Year: 2013, Topics: []string{"securities", "investment", "disclosure"}},
	{ShortName: "HDCA", Title: "Harmful Digital Communications Act 2015", Year: 2015, Topics: []string{"cyberbullying", "online harassment"}},
	{ShortName: "UTA", Title: "Unit Titles Act 2010", Year: 2010, Topics: []string{"body corporate", "apartments"}},
	{ShortName: "LGA", Title: "Local Government Act 2002", Year: 2002, Topics: []string{"councils", "rates", "bylaws"}},
	{ShortName: "FCA", Title: "Family Court Act 1980", Year: 1980, Topics: []string{"family court", "jurisdiction"}},
	{ShortName: "CORA", Title: "Coroners Act 2006", Year: 2006, Topics: []string{"inquests", "death inquiries"}},
	{ShortName: "SOGA", Title: "Sale of Goods Act 1908", Year: 1908, Topics: []string{"sale", "goods", "contracts"}},
	{ShortName: "EA", Title: "Education Act 1989", Year: 1989, Topics: []string{"schools", "students", "curriculum"}},
	{ShortName: "CONST", Title: "Constitution Act 1986", Year: 1986, Topics: []string{"parliament", "sovereignty", "executive"}},
	{ShortName: "ELEC", Title: "Electoral Act 1993", Year: 1993, Topics: []string{"voting", "elections", "parliament"}},
	{ShortName: "CITZ", Title: "Citizenship Act 1977", Year: 1977, Topics: []string{"citizenship", "naturalisation"}},
	{ShortName: "AML", Title: "Anti-Money Laundering and Countering Financing of Terrorism Act 2009", Year: 2009, Topics: []string{"money laundering", "terrorism financing", "reporting"}},
	{ShortName: "TMA", Title: "Trade Marks Act 2002", Year: 2002, Topics: []string{"trade marks", "registration", "infringement"}},
	{ShortName: "PATA", Title: "Patents Act 2013", Year: 2013, Topics: []string{"patents", "inventions", "intellectual property"}},
	{ShortName: "CCRA", Title: "Climate Change Response Act 2002", Year: 2002, Topics: []string{"emissions", "carbon", "climate"}},
	{ShortName: "CONS", Title: "Conservation Act 1987", Year: 1987, Topics: []string{"conservation", "DOC", "protected areas"}},
	{ShortName: "PSA", Title: "Public Service Act 2020", Year: 2020, Topics: []string{"public service", "government agencies"}},
	{ShortName: "FENZ", Title: "Fire and Emergency New Zealand Act 2017", Year: 2017, Topics: []string{"fire", "emergency", "rescue"}},
	{ShortName: "PFA", Title: "Public Finance Act 1989", Year: 1989, Topics: []string{"budget", "appropriation", "crown"}},
	{ShortName: "DCA", Title: "District Courts Act 1947", Year: 1947, Topics: []string{"district court", "jurisdiction"}},
	{ShortName: "BSA", Title: "Biosecurity Act 1993", Year: 1993, Topics: []string{"biosecurity", "pest", "quarantine"}},
	{ShortName: "FA", Title: "Fisheries Act 1996", Year: 1996, Topics: []string{"fishing", "quota", "marine"}},
	{ShortName: "HSNO", Title: "Hazardous Substances and New Organisms Act 1996", Year: 1996, Topics: []string{"hazardous", "chemicals", "GMO"}},
	{ShortName: "FCAM", Title: "Freedom Camping Act 2011", Year: 2011, Topics: []string{"camping", "vehicles", "local authority"}},
	{ShortName: "HA", Title: "Health Act 1956", Year: 1956, Topics: []string{"public health", "sanitation", "disease"}},
	{ShortName: "MA", Title: "Medicines Act 1981", Year: 1981, Topics: []string{"medicine", "pharmacy", "prescription"}},
	{ShortName: "SEA", Title: "Smokefree Environments Act 1990", Year: 1990, Topics: []string{"smoking", "tobacco", "vaping"}},
}

var ExampleQuestions = []string{
	"What is the maximum bond for a rental property?",
	"How much notice is required to end employment?",
	"What are my rights if a product is faulty?",
	"When do I need a building consent?",
	"What are the privacy principles under NZ law?",
	"What warranties apply to consumer goods?",
}
